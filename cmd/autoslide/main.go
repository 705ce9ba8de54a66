package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	err := cli.Execute(ctx)

	code := cli.ExitCode(err)
	switch code {
	case cli.ExitOK, cli.ExitInterrupted:
	case cli.ExitPartial:
		fmt.Fprintln(os.Stderr, err)
	default:
		report(err)
	}
	os.Exit(code)
}

// report prints err, putting the cause of a coded error on its own line.
func report(err error) {
	if apperr.GetCode(err) == "" {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", apperr.UserMessage(err))
	if cause := errors.Unwrap(err); cause != nil {
		fmt.Fprintln(os.Stderr, "  ", cause)
	}
}
