// Package slide models the per-slide configuration as a closed set of
// variants. A Slide value is always valid: constructors run the common
// checks and the variant's own rule before returning.
package slide

import (
	"fmt"
)

// Discriminators recognised by the default factory.
const (
	KindContent = "content"
	KindTitle   = "title_youtube"
)

// TitleLayoutName is the PowerPoint layout every title slide is built on.
const TitleLayoutName = "TitleLayout"

// Base holds the fields every variant shares.
type Base struct {
	LayoutType  string
	Title       string
	NotesSource string
	Images      []string
	LayoutName  string // PowerPoint layout override; empty means the presentation default
	Audio       string
}

func (b *Base) validate(kind string) error {
	if b.Title == "" {
		return fmt.Errorf("%s slide: title must not be empty", kind)
	}
	if b.LayoutType == "" {
		return fmt.Errorf("%s slide: layout_type must not be empty", kind)
	}
	return nil
}

func (b *Base) record(kind string) Record {
	return Record{
		SlideType:   kind,
		LayoutType:  b.LayoutType,
		Title:       b.Title,
		NotesSource: b.NotesSource,
		Images:      append([]string(nil), b.Images...),
		LayoutName:  b.LayoutName,
		Audio:       b.Audio,
	}
}

// Slide is implemented by every slide variant.
type Slide interface {
	Kind() string
	Common() *Base
	Validate() error
	Record() Record
}

// Content is a regular slide with no extra constraints.
type Content struct {
	Base
}

// NewContent returns a validated content slide.
func NewContent(b Base) (*Content, error) {
	s := &Content{Base: b}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Content) Kind() string    { return KindContent }
func (s *Content) Common() *Base   { return &s.Base }
func (s *Content) Validate() error { return s.Base.validate(KindContent) }
func (s *Content) Record() Record  { return s.Base.record(KindContent) }

// Title is a video title card: a subtitle and exactly one cover image on
// the TitleLayout PowerPoint layout.
type Title struct {
	Base
	Subtitle string
	// SeriesNumber is carried through the config but no template has a
	// placeholder for it.
	SeriesNumber string
}

// NewTitle fills LayoutName with TitleLayoutName when empty and validates.
func NewTitle(b Base, subtitle, seriesNumber string) (*Title, error) {
	if b.LayoutName == "" {
		b.LayoutName = TitleLayoutName
	}
	s := &Title{Base: b, Subtitle: subtitle, SeriesNumber: seriesNumber}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Title) Kind() string  { return KindTitle }
func (s *Title) Common() *Base { return &s.Base }

func (s *Title) Validate() error {
	if err := s.Base.validate(KindTitle); err != nil {
		return err
	}
	if s.Subtitle == "" {
		return fmt.Errorf("%s slide: subtitle is required", KindTitle)
	}
	if len(s.Images) != 1 {
		return fmt.Errorf("%s slide: exactly 1 image required (square cover), got %d", KindTitle, len(s.Images))
	}
	if s.LayoutName != TitleLayoutName {
		return fmt.Errorf("%s slide: layout_name must be %q, got %q", KindTitle, TitleLayoutName, s.LayoutName)
	}
	return nil
}

func (s *Title) Record() Record {
	r := s.Base.record(KindTitle)
	r.Subtitle = s.Subtitle
	r.SeriesNumber = s.SeriesNumber
	return r
}
