package imageproc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PDFDPI is the resolution PDF pages are rasterized at.
const PDFDPI = 150

// Info describes an image file.
type Info struct {
	Width  int
	Height int
	Format string
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Stat reports size and format. For PDFs it reports the first page at PDFDPI.
func Stat(path string) (Info, error) {
	if isPDF(path) {
		src, err := OpenPDF(path)
		if err != nil {
			return Info{}, err
		}
		defer src.Close()
		w, h, err := src.PageSize(0)
		if err != nil {
			return Info{}, err
		}
		scale := float64(PDFDPI) / 72
		return Info{Width: int(w * scale), Height: int(h * scale), Format: "pdf"}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Validate fully decodes the image, catching truncated or corrupt files
// that Stat accepts from their header alone.
func Validate(path string) error {
	info, err := Stat(path)
	if err != nil {
		return err
	}
	if info.Format == "pdf" {
		src, err := OpenPDF(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = src.Render(0, PDFDPI)
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, _, err := image.Decode(f); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
