// Package config describes a presentation to generate and loads it from
// JSON, YAML or TOML files.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/slide"
)

const (
	DefaultTemplatePath = "template.pptx"
	DefaultOutputPath   = "output.pptx"
	DefaultLayoutName   = "VideoLayout"
)

// Placeholder indices on the content layouts.
const (
	ContentTitleIdx  = 10
	ContentNumberIdx = 11
)

// Placeholder indices on TitleLayout.
const (
	TitleLayoutTitleIdx    = 10
	TitleLayoutNumberIdx   = 12
	TitleLayoutSubtitleIdx = 13
)

// Presentation is a validated presentation description.
type Presentation struct {
	TemplatePath string
	OutputPath   string
	LayoutName   string // PowerPoint layout used by slides without an override
	Slides       []slide.Slide
}

// New builds a Presentation, filling empty paths and layout name with the
// defaults.
func New(templatePath, outputPath, layoutName string, slides []slide.Slide) (*Presentation, error) {
	if len(slides) == 0 {
		return nil, apperr.New(apperr.CodeInvalidConfig, "slides must not be empty")
	}
	p := &Presentation{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		LayoutName:   layoutName,
		Slides:       slides,
	}
	if p.TemplatePath == "" {
		p.TemplatePath = DefaultTemplatePath
	}
	if p.OutputPath == "" {
		p.OutputPath = DefaultOutputPath
	}
	if p.LayoutName == "" {
		p.LayoutName = DefaultLayoutName
	}
	return p, nil
}

// LayoutNameFor returns the PowerPoint layout slide s is built on.
func (p *Presentation) LayoutNameFor(s slide.Slide) string {
	if name := s.Common().LayoutName; name != "" {
		return name
	}
	return p.LayoutName
}

// Warnings lists problems that do not stop a build: repeated titles and
// slides without images.
func (p *Presentation) Warnings() []string {
	var warnings []string

	counts := map[string]int{}
	for _, s := range p.Slides {
		counts[s.Common().Title]++
	}
	var dups []string
	for title, n := range counts {
		if n > 1 {
			dups = append(dups, title)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		warnings = append(warnings, fmt.Sprintf("duplicate titles: %s", strings.Join(dups, ", ")))
	}

	for i, s := range p.Slides {
		if len(s.Common().Images) == 0 {
			warnings = append(warnings, fmt.Sprintf("slide #%d ('%s') has no images", i+1, s.Common().Title))
		}
	}
	return warnings
}
