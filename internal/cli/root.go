package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// RootCommand creates the root command with all subcommands registered.
func RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "autoslide",
		Short:         "autoslide builds PowerPoint decks from slide configs",
		Long:          `autoslide fills a PowerPoint template with slides described in a JSON, YAML or TOML file: titles, slide numbers, speaker notes, images placed by layout blueprints, and autoplaying narration audio.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("autoslide %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newLayoutsCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newMCPCmd())

	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return RootCommand().ExecuteContext(ctx)
}

// PartialError reports a build that produced output but hit recoverable
// errors along the way.
type PartialError struct {
	Output string
	Errors []string
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s written with %d errors", e.Output, len(e.Errors))
}

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitPartial     = 2
	ExitInterrupted = 130
)

// ExitCode maps an Execute result to a process exit code.
func ExitCode(err error) int {
	var partial *PartialError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &partial):
		return ExitPartial
	default:
		return ExitFailure
	}
}
