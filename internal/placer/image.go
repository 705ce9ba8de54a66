package placer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/imageproc"
	"github.com/ivlev/autoslide/internal/layout"
	"github.com/ivlev/autoslide/internal/pptx"
	"github.com/ivlev/autoslide/internal/resource"
	"github.com/ivlev/autoslide/internal/slide"
)

// ImagePlacer places a slide's images into the slots of its blueprint.
type ImagePlacer struct {
	layouts *layout.Registry
	loader  *resource.Loader
	log     *log.Logger
}

// NewImagePlacer creates a placer resolving images through loader.
func NewImagePlacer(layouts *layout.Registry, loader *resource.Loader, logger *log.Logger) *ImagePlacer {
	if logger == nil {
		logger = log.Default()
	}
	return &ImagePlacer{layouts: layouts, loader: loader, log: logger}
}

// BlueprintFor returns the blueprint name a slide's images are placed
// with. Title slides always use layout.TitleBlueprint.
func BlueprintFor(s slide.Slide) string {
	if _, ok := s.(*slide.Title); ok {
		return layout.TitleBlueprint
	}
	return s.Common().LayoutType
}

// Place inserts the images of s onto target. The error is non-nil only
// when the slide's blueprint is not registered.
func (p *ImagePlacer) Place(target PictureTarget, s slide.Slide) (Result, error) {
	var res Result
	images := s.Common().Images
	if len(images) == 0 {
		return res, nil
	}

	name := BlueprintFor(s)
	bp, err := p.layouts.Get(name)
	if err != nil {
		return res, err
	}
	if len(images) < bp.RequiredImages() {
		res.warnf("layout %s expects %d images, got %d", name, bp.RequiredImages(), len(images))
		p.log.Warn("too few images", "layout", name, "want", bp.RequiredImages(), "got", len(images))
	}

	slots := bp.Placements()
	for i, img := range images {
		if i >= len(slots) {
			res.warnf("images from #%d on ignored: layout %s has %d slots", i+1, name, len(slots))
			p.log.Warn("surplus images ignored", "layout", name, "from", i+1, "slots", len(slots))
			break
		}
		if err := p.placeOne(target, img, slots[i]); err != nil {
			res.errorf("%s", err)
			p.log.Error("image skipped", "image", img, "err", err)
			continue
		}
		res.Count++
	}
	return res, nil
}

func (p *ImagePlacer) placeOne(target PictureTarget, img string, slot layout.Placement) error {
	path, err := p.loader.ResolveImage(img)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return fmt.Errorf("image not found: %s", img)
		}
		return fmt.Errorf("error adding image %s: %w", img, err)
	}

	asset, err := imageproc.Load(path)
	if err != nil {
		var convErr *imageproc.ConversionError
		if errors.As(err, &convErr) {
			return fmt.Errorf("error converting %s %s: %w", strings.ToUpper(convErr.Format), img, convErr.Err)
		}
		return fmt.Errorf("error adding image %s: %w", img, err)
	}
	defer asset.Release()
	if asset.Converted {
		p.log.Debug("converted image", "image", img, "to", asset.Format)
	}

	fit, ok := imageproc.FitBox(asset.Width, asset.Height, slot.MaxWidth, slot.MaxHeight)
	if !ok {
		return fmt.Errorf("cannot determine dimensions of image %s", img)
	}
	rect := pptx.Rect{Left: pptx.Cm(slot.Left), Top: pptx.Cm(slot.Top)}
	if w, ok := fit.Width(); ok {
		rect.Width = pptx.Cm(w)
	}
	if h, ok := fit.Height(); ok {
		rect.Height = pptx.Cm(h)
	}

	_, err = target.AddPicture(pptx.Image{
		Name:   asset.Name,
		Format: asset.Format,
		Data:   asset.Bytes(),
		Width:  asset.Width,
		Height: asset.Height,
	}, rect)
	if err != nil {
		return fmt.Errorf("error adding image %s: %w", img, err)
	}
	p.log.Debug("placed image", "image", img, "fixed", fit.Axis, "cm", fit.Length)
	return nil
}
