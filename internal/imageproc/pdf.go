package imageproc

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDFSource rasterizes PDF pages so they can be placed like images.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

// OpenPDF opens the document at path.
func OpenPDF(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path}, nil
}

// PageSize returns the page size in points.
func (p *PDFSource) PageSize(index int) (float64, float64, error) {
	rect, err := p.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// Render rasterizes page index at dpi.
func (p *PDFSource) Render(index int, dpi int) (image.Image, error) {
	return p.doc.ImageDPI(index, float64(dpi))
}

func (p *PDFSource) Close() error {
	return p.doc.Close()
}
