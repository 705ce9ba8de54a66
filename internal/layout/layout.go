// Package layout holds the image blueprints a slide's layout_type selects:
// where images go on a slide and how large they may grow.
package layout

import (
	"fmt"
	"strings"
)

// Placement is a bounding box for one image, in centimeters.
// The final size is computed at placement time.
type Placement struct {
	Left      float64 `json:"left" yaml:"left" toml:"left"`
	Top       float64 `json:"top" yaml:"top" toml:"top"`
	MaxWidth  float64 `json:"max_width" yaml:"max_width" toml:"max_width"`
	MaxHeight float64 `json:"max_height" yaml:"max_height" toml:"max_height"`
}

// Blueprint is an immutable named list of image slots.
type Blueprint struct {
	name        string
	description string
	required    int
	placements  []Placement
}

// NewBlueprint validates that len(placements) == required.
func NewBlueprint(name, description string, required int, placements ...Placement) (*Blueprint, error) {
	if name == "" {
		return nil, fmt.Errorf("blueprint name must not be empty")
	}
	if len(placements) != required {
		return nil, fmt.Errorf("blueprint %q: %d placements for %d required images", name, len(placements), required)
	}
	return &Blueprint{
		name:        name,
		description: description,
		required:    required,
		placements:  append([]Placement(nil), placements...),
	}, nil
}

// MustBlueprint is like NewBlueprint but panics on error.
func MustBlueprint(name, description string, required int, placements ...Placement) *Blueprint {
	b, err := NewBlueprint(name, description, required, placements...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Blueprint) Name() string        { return b.name }
func (b *Blueprint) Description() string { return b.description }
func (b *Blueprint) RequiredImages() int { return b.required }

// Placements returns a copy of the slots in order.
func (b *Blueprint) Placements() []Placement {
	return append([]Placement(nil), b.placements...)
}

// Registry maps names to blueprints. It is populated once and then read;
// it has no locking.
type Registry struct {
	layouts map[string]*Blueprint
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{layouts: make(map[string]*Blueprint)}
}

// Register adds b, failing if the name is taken.
func (r *Registry) Register(b *Blueprint) error {
	if _, ok := r.layouts[b.name]; ok {
		return fmt.Errorf("layout %q is already registered; use another name or unregister it first", b.name)
	}
	r.layouts[b.name] = b
	r.order = append(r.order, b.name)
	return nil
}

// Get returns the blueprint registered under name.
func (r *Registry) Get(name string) (*Blueprint, error) {
	b, ok := r.layouts[name]
	if !ok {
		available := strings.Join(r.order, ", ")
		if available == "" {
			available = "(empty)"
		}
		return nil, fmt.Errorf("layout %q not found in registry; available layouts: %s", name, available)
	}
	return b, nil
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.layouts[name]
	return ok
}

// List returns registered names in registration order.
func (r *Registry) List() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Unregister(name string) error {
	if _, ok := r.layouts[name]; !ok {
		return fmt.Errorf("layout %q not found in registry", name)
	}
	delete(r.layouts, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) Clear() {
	r.layouts = make(map[string]*Blueprint)
	r.order = nil
}
