package pptx

import "github.com/beevik/etree"

// Layout is a slide layout of the template's master.
type Layout struct {
	name string
	part string
	doc  *etree.Document
}

func (l *Layout) Name() string { return l.name }

// Shapes returns every shape on the layout.
func (l *Layout) Shapes() []*Shape {
	return shapesIn(spTree(l.doc))
}

// Placeholders returns the layout's placeholder shapes in document order.
func (l *Layout) Placeholders() []*Shape {
	var out []*Shape
	for _, s := range l.Shapes() {
		if _, ok := s.Placeholder(); ok {
			out = append(out, s)
		}
	}
	return out
}
