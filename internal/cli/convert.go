package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/autoslide/internal/config"
	"github.com/ivlev/autoslide/internal/slide"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert <config> <output>",
		Short:   "Rewrite a config in another format",
		Long:    `Rewrite a config as JSON, YAML or TOML, chosen by the output file extension. Legacy fields are written in their current form.`,
		Example: `  autoslide convert slides.json slides.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0], slide.NewFactory())
			if err != nil {
				return err
			}
			if err := config.Save(cfg, args[1]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("converted config", "from", args[0], "to", args[1])
			printSuccess(cmd.OutOrStdout(), "Wrote %s (%d slides)", args[1], len(cfg.Slides))
			return nil
		},
	}
}
