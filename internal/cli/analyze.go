package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/autoslide/internal/analyzer"
	"github.com/ivlev/autoslide/internal/config"
	"github.com/ivlev/autoslide/internal/pptx"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		layoutName string
		list       bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "analyze <template.pptx>",
		Short: "List the layouts and placeholders of a template",
		Example: `  autoslide analyze template.pptx
  autoslide analyze template.pptx -l TitleLayout
  autoslide analyze template.pptx --list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prs, err := pptx.Open(args[0])
			if err != nil {
				return err
			}
			if list {
				layoutName = ""
				format = "names"
			}
			f, err := analyzer.NewFormatter(format)
			if err != nil {
				return err
			}
			if _, ok := f.(analyzer.TextFormatter); ok {
				f = analyzer.TextFormatter{HeaderStyle: styleTableHeader, BorderStyle: StyleDim}
			}
			report, err := analyzer.Analyze(prs, layoutName)
			if err != nil {
				return err
			}
			logger.Debug("analyzed template", "path", args[0], "layouts", len(report.Layouts))

			out := cmd.OutOrStdout()
			if format == "text" || format == "" {
				printInfo(out, "%s", StyleTitle.Render(args[0]))
			}
			return f.Format(out, report)
		},
	}

	cmd.Flags().StringVarP(&layoutName, "layout", "l", config.DefaultLayoutName, "layout whose placeholders to list")
	cmd.Flags().BoolVar(&list, "list", false, "print layout names only")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}
