package placer

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/pptx"
	"github.com/ivlev/autoslide/internal/resource"
)

// Audio is embedded as a 1x1 cm video object parked above the slide, with
// a video MIME type so PowerPoint accepts it as playable media.
const (
	AudioMimeType = "video/mp4"
	audioLeftCm   = 0
	audioTopCm    = -10
	audioSizeCm   = 1
)

// MediaPlacer embeds audio files on slides.
type MediaPlacer struct {
	loader *resource.Loader
	log    *log.Logger
}

// NewMediaPlacer creates a placer resolving audio through loader.
func NewMediaPlacer(loader *resource.Loader, logger *log.Logger) *MediaPlacer {
	if logger == nil {
		logger = log.Default()
	}
	return &MediaPlacer{loader: loader, log: logger}
}

// PlaceAudio embeds the audio at audioPath and, with autoplay, schedules it
// to start with the slide. A missing timing node is recorded as an error
// but the audio stays on the slide.
func (p *MediaPlacer) PlaceAudio(target MediaTarget, audioPath string, autoplay bool) Result {
	var res Result
	path, err := p.loader.ResolveAudio(audioPath)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			res.errorf("audio not found: %s", audioPath)
		} else {
			res.errorf("error adding audio %s: %v", audioPath, err)
		}
		p.log.Warn("audio skipped", "audio", audioPath, "err", err)
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.errorf("error adding audio %s: %v", audioPath, err)
		return res
	}
	shape, err := target.AddMovie(pptx.Movie{
		Name:     filepath.Base(path),
		Data:     data,
		MimeType: AudioMimeType,
	}, pptx.Rect{
		Left:   pptx.Cm(audioLeftCm),
		Top:    pptx.Cm(audioTopCm),
		Width:  pptx.Cm(audioSizeCm),
		Height: pptx.Cm(audioSizeCm),
	})
	if err != nil {
		res.errorf("error adding audio %s: %v", audioPath, err)
		p.log.Error("audio skipped", "audio", audioPath, "err", err)
		return res
	}
	res.Count++
	p.log.Debug("embedded audio", "audio", audioPath, "shape", shape.ID())

	if !autoplay {
		return res
	}
	outcome, err := target.EnableAutoplay(shape.ID())
	switch {
	case err != nil:
		res.errorf("error enabling autoplay for %s: %v", audioPath, err)
		p.log.Warn("autoplay not set", "audio", audioPath, "err", err)
	case outcome == pptx.AutoplayCreated:
		res.errorf("timing element not found for media shape_id=%d; built a new one", shape.ID())
		p.log.Warn("timing built from scratch", "shape", shape.ID())
	default:
		p.log.Info("autoplay enabled", "audio", filepath.Base(path))
	}
	return res
}
