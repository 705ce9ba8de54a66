package cli

import (
	"github.com/ivlev/autoslide/internal/config"
	"github.com/ivlev/autoslide/internal/resource"
	"github.com/ivlev/autoslide/internal/slide"
)

// project is a loaded config together with the paths it resolves to.
// Paths named in the config are relative to the config's directory; paths
// given on the command line are used as is.
type project struct {
	cfg      *config.Presentation
	loader   *resource.Loader
	template string
	output   string
}

func loadProject(configPath, templateOverride, outputOverride string) (*project, error) {
	cfg, err := config.Load(configPath, slide.NewFactory())
	if err != nil {
		return nil, err
	}
	resolver, err := resource.NewResolver(configPath)
	if err != nil {
		return nil, err
	}
	p := &project{
		cfg:      cfg,
		loader:   resource.NewLoader(resolver),
		template: resolver.Resolve(cfg.TemplatePath),
		output:   resolver.Resolve(cfg.OutputPath),
	}
	if templateOverride != "" {
		p.template = templateOverride
		cfg.TemplatePath = templateOverride
	}
	if outputOverride != "" {
		p.output = outputOverride
		cfg.OutputPath = outputOverride
	}
	return p, nil
}
