package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/autoslide/internal/engine"
	"github.com/ivlev/autoslide/internal/layout"
)

type generateOptions struct {
	output     string
	template   string
	quiet      bool
	noAutoplay bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <config>",
		Short: "Build a presentation from a config file",
		Long: `Build a presentation from a JSON, YAML or TOML config.

Slides that fail are reported and skipped; the presentation is still
written. The exit status is 2 when that happens.`,
		Example: `  autoslide generate slides.yaml
  autoslide generate slides.json -t brand.pptx -o lesson1.pptx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: output_path from the config)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template file (default: template_path from the config)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "log warnings and errors only")
	cmd.Flags().BoolVar(&opts.noAutoplay, "no-autoplay", false, "do not start audio automatically")

	return cmd
}

func runGenerate(cmd *cobra.Command, configPath string, opts generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	if opts.quiet {
		logger.SetLevel(log.WarnLevel)
	}
	out := cmd.OutOrStdout()
	prog := newProgress(logger)

	p, err := loadProject(configPath, opts.template, opts.output)
	if err != nil {
		return err
	}
	logger.Info("loaded config", "path", configPath, "slides", len(p.cfg.Slides))
	for _, w := range p.cfg.Warnings() {
		logger.Warn(w)
	}

	layouts := layout.NewRegistry()
	if err := layout.RegisterDefaults(layouts); err != nil {
		return err
	}
	b := engine.NewBuilder(layouts, p.loader, logger)
	b.Autoplay = !opts.noAutoplay

	prs, err := b.Build(p.cfg, p.template)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.Save(prs, p.output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d slides", len(prs.Slides())))

	for _, w := range b.Warnings() {
		printWarning(out, "%s", w)
	}
	for _, e := range b.Errors() {
		printError(out, "%s", e)
	}
	if errs := b.Errors(); len(errs) > 0 {
		printWarning(out, "Saved %s with %s errors", p.output, StyleNumber.Render(fmt.Sprint(len(errs))))
		return &PartialError{Output: p.output, Errors: errs}
	}
	printSuccess(out, "Saved %s", p.output)
	return nil
}
