// Package imageproc reads image metadata, fits images into bounding boxes
// and converts formats PowerPoint cannot embed into PNG.
package imageproc

// Axis is the dimension a Fit constrains.
type Axis int

const (
	AxisWidth Axis = iota + 1
	AxisHeight
)

func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	default:
		return "none"
	}
}

// Fit fixes exactly one dimension of a picture; the other is derived from
// the picture's own aspect ratio when it is rendered.
type Fit struct {
	Axis   Axis
	Length float64
}

// Width returns the fixed width, or ok=false when width is automatic.
func (f Fit) Width() (float64, bool) {
	if f.Axis == AxisWidth {
		return f.Length, true
	}
	return 0, false
}

// Height returns the fixed height, or ok=false when height is automatic.
func (f Fit) Height() (float64, bool) {
	if f.Axis == AxisHeight {
		return f.Length, true
	}
	return 0, false
}

// FitBox decides which axis of a w x h pixel image to pin so it fills a
// maxWidth x maxHeight box without overflowing. An image relatively wider
// than the box pins width; anything else, ties included, pins height.
// ok is false when either height is not positive.
func FitBox(w, h int, maxWidth, maxHeight float64) (Fit, bool) {
	if h <= 0 || w <= 0 || maxHeight <= 0 || maxWidth <= 0 {
		return Fit{}, false
	}
	imageRatio := float64(w) / float64(h)
	boxRatio := maxWidth / maxHeight
	if imageRatio > boxRatio {
		return Fit{Axis: AxisWidth, Length: maxWidth}, true
	}
	return Fit{Axis: AxisHeight, Length: maxHeight}, true
}
