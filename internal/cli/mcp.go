package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/autoslide/internal/engine"
	"github.com/ivlev/autoslide/internal/layout"
	"github.com/ivlev/autoslide/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve autoslide as an MCP tool server on stdio",
		Long: `Serve autoslide to Model Context Protocol clients over stdin/stdout.

Two tools are offered: generate_presentation builds a deck from a config
file, and get_layout_documentation describes the image layouts. Logs go to
stderr; stdout carries only protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			return newMCPServer(logger).Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newMCPServer(logger *log.Logger) *mcp.Server {
	s := mcp.NewServer("autoslide", version, logger)
	s.AddTool(mcp.Tool{
		Name:        "generate_presentation",
		Description: "Build a PowerPoint presentation from a JSON, YAML or TOML slide config. Relative paths in the config resolve against the config's directory.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"config_path": map[string]any{"type": "string", "description": "Absolute path to the slide config"},
			},
			"required": []string{"config_path"},
		},
		Call: func(ctx context.Context, args map[string]any) (string, error) {
			return generatePresentation(ctx, logger, mcp.StringArg(args, "config_path"))
		},
	})
	s.AddTool(mcp.Tool{
		Name:        "get_layout_documentation",
		Description: "Describe the image layouts a slide's layout_type can name. Omit layout_name or pass \"all\" for every layout.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"layout_name": map[string]any{"type": "string"},
			},
		},
		Call: func(_ context.Context, args map[string]any) (string, error) {
			return layoutDocumentation(mcp.StringArg(args, "layout_name"))
		},
	})
	return s
}

func generatePresentation(ctx context.Context, logger *log.Logger, configPath string) (string, error) {
	if configPath == "" {
		return "", fmt.Errorf("config_path is required")
	}
	if _, err := os.Stat(configPath); err != nil {
		return "", fmt.Errorf("config not found: %s", configPath)
	}
	p, err := loadProject(configPath, "", "")
	if err != nil {
		return "", err
	}

	layouts := layout.NewRegistry()
	if err := layout.RegisterDefaults(layouts); err != nil {
		return "", err
	}
	b := engine.NewBuilder(layouts, p.loader, logger)
	prs, err := b.Build(p.cfg, p.template)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.Save(prs, p.output); err != nil {
		return "", err
	}

	var sb strings.Builder
	errs := b.Errors()
	if len(errs) > 0 {
		sb.WriteString("Presentation saved with errors\n")
	} else {
		sb.WriteString("Presentation saved\n")
	}
	fmt.Fprintf(&sb, "File: %s\nSlides: %d\nLayout: %s\n", p.output, len(prs.Slides()), p.cfg.LayoutName)
	if len(errs) > 0 {
		fmt.Fprintf(&sb, "\nErrors (%d):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
	}
	return sb.String(), nil
}

func layoutDocumentation(name string) (string, error) {
	blueprints := layout.Defaults()
	if name == "" || strings.EqualFold(name, "all") {
		var sb strings.Builder
		sb.WriteString("# Image layouts\n\nSet a slide's layout_type to one of the names below. " +
			"Each image is fitted into its slot keeping its aspect ratio. " +
			"Coordinates are centimeters on a 33.867 x 19.05 cm slide.\n")
		for _, b := range blueprints {
			sb.WriteString("\n")
			writeBlueprintDoc(&sb, b)
		}
		return sb.String(), nil
	}

	names := make([]string, 0, len(blueprints))
	for _, b := range blueprints {
		if b.Name() == name {
			var sb strings.Builder
			writeBlueprintDoc(&sb, b)
			return sb.String(), nil
		}
		names = append(names, b.Name())
	}
	return "", fmt.Errorf("layout %q not found; available layouts: %s", name, strings.Join(names, ", "))
}

func writeBlueprintDoc(sb *strings.Builder, b *layout.Blueprint) {
	fmt.Fprintf(sb, "## %s\n\n%s.\n\nImages: %d\n\n", b.Name(), b.Description(), b.RequiredImages())
	sb.WriteString("| Slot | Left | Top | Max width | Max height |\n|---|---|---|---|---|\n")
	for i, p := range b.Placements() {
		fmt.Fprintf(sb, "| %d | %.2f | %.2f | %.2f | %.2f |\n", i+1, p.Left, p.Top, p.MaxWidth, p.MaxHeight)
	}
	if b.Name() == layout.TitleBlueprint {
		sb.WriteString("\nTitle slides always place their image with this layout.\n")
	}
}
