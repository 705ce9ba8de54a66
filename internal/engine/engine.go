// Package engine assembles a presentation from a config: one slide per
// configured slide, built on the named template layout, with title, slide
// number, notes, images and audio filled in.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/config"
	"github.com/ivlev/autoslide/internal/layout"
	"github.com/ivlev/autoslide/internal/notes"
	"github.com/ivlev/autoslide/internal/placer"
	"github.com/ivlev/autoslide/internal/pptx"
	"github.com/ivlev/autoslide/internal/resource"
	"github.com/ivlev/autoslide/internal/slide"
)

// Builder turns a config into a presentation. A build never stops at a
// broken slide: the failure is recorded and the next slide is built.
type Builder struct {
	Loader   *resource.Loader
	Images   *placer.ImagePlacer
	Media    *placer.MediaPlacer
	Autoplay bool

	log      *log.Logger
	errors   []string
	warnings []string
}

// NewBuilder creates a builder placing images from layouts; a nil logger uses log.Default().
func NewBuilder(layouts *layout.Registry, loader *resource.Loader, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{
		Loader:   loader,
		Images:   placer.NewImagePlacer(layouts, loader, logger),
		Media:    placer.NewMediaPlacer(loader, logger),
		Autoplay: true,
		log:      logger,
	}
}

// Errors returns the recoverable errors of the last build.
func (b *Builder) Errors() []string {
	return append([]string(nil), b.errors...)
}

// Warnings returns the warnings of the last build.
func (b *Builder) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

// Build opens the template and adds every configured slide. It fails only
// when the template cannot be loaded; per-slide problems are available
// from Errors afterwards.
func (b *Builder) Build(cfg *config.Presentation, templatePath string) (*pptx.Presentation, error) {
	b.errors = nil
	b.warnings = nil
	start := time.Now()

	b.log.Info("loading template", "path", templatePath)
	prs, err := pptx.Open(templatePath)
	if err != nil {
		return nil, err
	}

	// PowerPoint does not show notes of a slide whose notes page was never
	// created, so every slide gets one up front.
	for i, s := range prs.Slides() {
		if _, err := s.Notes(); err != nil {
			b.errors = append(b.errors, fmt.Sprintf("notes page for existing slide %d: %v", i+1, err))
		}
	}

	b.log.Infof("creating %d slides", len(cfg.Slides))
	created := 0
	for i, s := range cfg.Slides {
		n := i + 1
		if err := b.addSlide(prs, cfg, s, n); err != nil {
			msg := fmt.Sprintf("error creating slide %d ('%s'): %v", n, s.Common().Title, err)
			b.errors = append(b.errors, msg)
			b.log.Error("slide failed", "slide", n, "title", s.Common().Title, "err", err)
			continue
		}
		created++
		b.log.Info("slide created", "slide", n, "title", s.Common().Title, "layout", cfg.LayoutNameFor(s))
	}

	if len(b.errors) > 0 {
		b.log.Warnf("built %d/%d slides with %d errors (%s)", created, len(cfg.Slides), len(b.errors), since(start))
	} else {
		b.log.Infof("built %d slides (%s)", created, since(start))
	}
	return prs, nil
}

func since(t time.Time) time.Duration {
	return time.Since(t).Round(time.Millisecond)
}

func (b *Builder) addSlide(prs *pptx.Presentation, cfg *config.Presentation, s slide.Slide, n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	name := cfg.LayoutNameFor(s)
	l, ok := prs.Layout(name)
	if !ok {
		return fmt.Errorf("layout %q not found in template; available layouts: %s", name, strings.Join(prs.LayoutNames(), ", "))
	}
	ps, err := prs.AddSlide(l)
	if err != nil {
		return err
	}
	notesPage, err := ps.Notes()
	if err != nil {
		return err
	}

	base := s.Common()
	titleIdx, numberIdx := config.ContentTitleIdx, config.ContentNumberIdx
	title, isTitle := s.(*slide.Title)
	if isTitle {
		titleIdx, numberIdx = config.TitleLayoutTitleIdx, config.TitleLayoutNumberIdx
	}

	if ph, ok := ps.Placeholder(titleIdx); ok {
		ph.SetText(base.Title)
	} else {
		b.log.Debug("layout has no title placeholder", "slide", n, "idx", titleIdx)
	}
	if isTitle {
		b.setTitleFields(ps, title, n)
	}
	if ph, ok := ps.Placeholder(numberIdx); ok {
		ph.SetText(strconv.Itoa(n))
	} else {
		b.log.Debug("layout has no number placeholder", "slide", n, "idx", numberIdx)
	}

	raw, err := b.Loader.LoadNotes(base.NotesSource)
	if err != nil {
		return err
	}
	notesPage.SetText(notes.Clean(raw))

	res, err := b.Images.Place(ps, s)
	b.collect(n, res)
	if err != nil {
		return err
	}

	if base.Audio != "" {
		b.collect(n, b.Media.PlaceAudio(ps, base.Audio, b.Autoplay))
	}
	return nil
}

func (b *Builder) setTitleFields(ps *pptx.Slide, t *slide.Title, n int) {
	if ph, ok := ps.Placeholder(config.TitleLayoutSubtitleIdx); ok {
		ph.SetText(t.Subtitle)
	} else {
		b.log.Warn("layout has no subtitle placeholder", "slide", n, "idx", config.TitleLayoutSubtitleIdx)
	}
	if t.SeriesNumber != "" {
		b.log.Info("series number not written: no placeholder for it", "slide", n, "series", t.SeriesNumber)
	}
}

func (b *Builder) collect(n int, res placer.Result) {
	for _, e := range res.Errors {
		b.errors = append(b.errors, fmt.Sprintf("slide %d: %s", n, e))
	}
	for _, w := range res.Warnings {
		b.warnings = append(b.warnings, fmt.Sprintf("slide %d: %s", n, w))
	}
}

// Save writes prs to path.
func (b *Builder) Save(prs *pptx.Presentation, path string) error {
	if err := prs.Save(path); err != nil {
		return apperr.Wrap(apperr.CodeIO, err, "saving presentation")
	}
	b.log.Info("saved", "path", path)
	return nil
}
