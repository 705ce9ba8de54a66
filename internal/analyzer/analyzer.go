// Package analyzer reports the slide layouts of a template and the
// placeholders each layout offers.
package analyzer

import (
	"sort"
	"strings"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/pptx"
)

// SampleLen is the number of characters of placeholder text kept in a report.
const SampleLen = 50

// Placeholder describes one placeholder of a layout.
type Placeholder struct {
	Idx    int    `json:"idx"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Sample string `json:"sample,omitempty"`
}

// Layout describes one slide layout.
type Layout struct {
	Name         string        `json:"name"`
	Placeholders []Placeholder `json:"placeholders"`
}

// Report is the result of analyzing a template.
type Report struct {
	Layouts []string `json:"layouts"`
	Layout  *Layout  `json:"layout,omitempty"`
}

// Analyze lists the layouts of prs and, when layoutName is non-empty, the
// placeholders of that layout.
func Analyze(prs *pptx.Presentation, layoutName string) (*Report, error) {
	r := &Report{Layouts: prs.LayoutNames()}
	if layoutName == "" {
		return r, nil
	}
	l, err := Inspect(prs, layoutName)
	if err != nil {
		return r, err
	}
	r.Layout = l
	return r, nil
}

// Inspect returns the placeholders of the named layout ordered by idx.
func Inspect(prs *pptx.Presentation, name string) (*Layout, error) {
	l, ok := prs.Layout(name)
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "layout %q not found; available layouts: %s",
			name, strings.Join(prs.LayoutNames(), ", "))
	}
	out := &Layout{Name: l.Name()}
	for _, sh := range l.Placeholders() {
		ph, _ := sh.Placeholder()
		out.Placeholders = append(out.Placeholders, Placeholder{
			Idx:    ph.Idx,
			Type:   ph.Type,
			Name:   sh.Name(),
			Sample: Sample(sh.Text()),
		})
	}
	sort.SliceStable(out.Placeholders, func(i, j int) bool {
		return out.Placeholders[i].Idx < out.Placeholders[j].Idx
	})
	return out, nil
}

// Sample flattens text to one line and cuts it to SampleLen characters.
func Sample(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= SampleLen {
		return text
	}
	return string(runes[:SampleLen]) + "..."
}
