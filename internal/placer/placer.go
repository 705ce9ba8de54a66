// Package placer puts a slide's images and audio onto a presentation slide.
// Placement never fails on a broken asset: problems are returned in a
// Result and the remaining assets are still placed.
package placer

import (
	"fmt"

	"github.com/ivlev/autoslide/internal/pptx"
)

// Result reports what a placement call did.
type Result struct {
	Count    int      // assets inserted
	Errors   []string // recoverable failures
	Warnings []string // count mismatches and similar notices
}

// Placed reports whether at least one asset was inserted.
func (r *Result) Placed() bool { return r.Count > 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends other's counts and messages to r.
func (r *Result) Merge(other Result) {
	r.Count += other.Count
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// PictureTarget receives pictures. *pptx.Slide implements it.
type PictureTarget interface {
	AddPicture(img pptx.Image, r pptx.Rect) (*pptx.Shape, error)
}

// MediaTarget receives media and schedules it to autoplay. *pptx.Slide
// implements it.
type MediaTarget interface {
	AddMovie(m pptx.Movie, r pptx.Rect) (*pptx.Shape, error)
	EnableAutoplay(shapeID int) (pptx.AutoplayOutcome, error)
}
