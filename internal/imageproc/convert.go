package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// nativeFormats are embedded into the presentation unchanged.
var nativeFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// Asset is image data ready to embed. Converted assets hold a pooled
// buffer; call Release once the bytes have been copied out.
type Asset struct {
	Name      string
	Format    string
	Width     int
	Height    int
	Converted bool

	data []byte
	buf  *bytes.Buffer
}

// Bytes returns the encoded image. It is invalid after Release.
func (a *Asset) Bytes() []byte {
	if a.buf != nil {
		return a.buf.Bytes()
	}
	return a.data
}

// Release returns the conversion buffer to the pool. Safe to call twice.
func (a *Asset) Release() {
	if a.buf != nil {
		putBuffer(a.buf)
		a.buf = nil
	}
	a.data = nil
}

// ConversionError marks a failure to turn a non-native image into PNG.
type ConversionError struct {
	Path   string
	Format string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("error converting %s %s: %v", strings.ToUpper(e.Format), e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Load reads the image at path. Formats PowerPoint embeds natively are
// returned as-is; WebP and PDF (first page) are decoded, flattened onto
// white and re-encoded as PNG in memory.
func Load(path string) (*Asset, error) {
	name := filepath.Base(path)
	if isPDF(path) {
		src, err := OpenPDF(path)
		if err != nil {
			return nil, &ConversionError{Path: path, Format: "pdf", Err: err}
		}
		defer src.Close()
		img, err := src.Render(0, PDFDPI)
		if err != nil {
			return nil, &ConversionError{Path: path, Format: "pdf", Err: err}
		}
		return encodeFlat(name, "pdf", path, img)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if nativeFormats[format] {
		return &Asset{Name: name, Format: format, Width: cfg.Width, Height: cfg.Height, data: data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ConversionError{Path: path, Format: format, Err: err}
	}
	return encodeFlat(name, format, path, img)
}

func encodeFlat(name, format, path string, img image.Image) (*Asset, error) {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)

	buf := getBuffer()
	if err := png.Encode(buf, canvas); err != nil {
		putBuffer(buf)
		return nil, &ConversionError{Path: path, Format: format, Err: err}
	}

	return &Asset{
		Name:      strings.TrimSuffix(name, filepath.Ext(name)) + ".png",
		Format:    "png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Converted: true,
		buf:       buf,
	}, nil
}
