package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/autoslide/internal/layout"
)

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "Print the built-in image blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := layout.NewRegistry()
			if err := layout.RegisterDefaults(r); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range r.List() {
				b, err := r.Get(name)
				if err != nil {
					return err
				}
				printInfo(out, "%s %s", StyleTitle.Render(b.Name()), StyleDim.Render(b.Description()))
				for i, p := range b.Placements() {
					printDetail(out, "#%d  left %.2f  top %.2f  max %.2f x %.2f cm", i+1, p.Left, p.Top, p.MaxWidth, p.MaxHeight)
				}
			}
			return nil
		},
	}
}
