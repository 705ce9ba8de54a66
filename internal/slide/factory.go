package slide

import (
	"fmt"
	"strings"
)

// Constructor builds a validated Slide from its record form.
type Constructor func(Record) (Slide, error)

// Factory dispatches records to constructors by their slide_type.
type Factory struct {
	ctors map[string]Constructor
	kinds []string
}

// NewFactory returns a factory with the content and title variants registered.
func NewFactory() *Factory {
	f := &Factory{ctors: make(map[string]Constructor)}
	_ = f.Register(KindContent, func(r Record) (Slide, error) {
		return NewContent(r.base())
	})
	_ = f.Register(KindTitle, func(r Record) (Slide, error) {
		return NewTitle(r.base(), r.Subtitle, r.SeriesNumber)
	})
	return f
}

// Register adds a variant. Registering a kind twice fails.
func (f *Factory) Register(kind string, ctor Constructor) error {
	if kind == "" {
		return fmt.Errorf("slide type must not be empty")
	}
	if _, ok := f.ctors[kind]; ok {
		return fmt.Errorf("slide type %q is already registered", kind)
	}
	f.ctors[kind] = ctor
	f.kinds = append(f.kinds, kind)
	return nil
}

// Kinds lists registered discriminators in registration order.
func (f *Factory) Kinds() []string {
	return append([]string(nil), f.kinds...)
}

// Create builds the variant named by r.SlideType, defaulting to content.
func (f *Factory) Create(r Record) (Slide, error) {
	kind := r.SlideType
	if kind == "" {
		kind = KindContent
	}
	ctor, ok := f.ctors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown slide_type %q; available: %s", kind, strings.Join(f.kinds, ", "))
	}
	return ctor(r)
}

// CreateAll builds every record, reporting the 1-based position of the
// first failure.
func (f *Factory) CreateAll(records []Record) ([]Slide, error) {
	slides := make([]Slide, 0, len(records))
	for i, r := range records {
		s, err := f.Create(r)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, s)
	}
	return slides, nil
}
