package placer

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/autoslide/internal/layout"
	"github.com/ivlev/autoslide/internal/pptx"
	"github.com/ivlev/autoslide/internal/pptx/pptxtest"
	"github.com/ivlev/autoslide/internal/resource"
	"github.com/ivlev/autoslide/internal/slide"
)

type fixture struct {
	dir      string
	loader   *resource.Loader
	registry *layout.Registry
	slide    *pptx.Slide
	logger   *log.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.pptx")
	pptxtest.Default().Write(t, tplPath)

	prs, err := pptx.Open(tplPath)
	require.NoError(t, err)
	l, ok := prs.Layout("VideoLayout")
	require.True(t, ok)
	s, err := prs.AddSlide(l)
	require.NoError(t, err)

	r, err := resource.NewDirResolver(dir)
	require.NoError(t, err)
	reg := layout.NewRegistry()
	require.NoError(t, layout.RegisterDefaults(reg))

	return &fixture{dir: dir, loader: resource.NewLoader(r), registry: reg, slide: s, logger: log.New(io.Discard)}
}

func (f *fixture) png(t *testing.T, name string, w, h int) string {
	t.Helper()
	out, err := os.Create(filepath.Join(f.dir, name))
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, image.NewRGBA(image.Rect(0, 0, w, h))))
	return name
}

func (f *fixture) pictures() []*pptx.Shape {
	var out []*pptx.Shape
	for _, sh := range f.slide.Shapes() {
		if sh.Kind() == "pic" {
			out = append(out, sh)
		}
	}
	return out
}

func content(t *testing.T, layoutType string, images ...string) slide.Slide {
	t.Helper()
	s, err := slide.NewContent(slide.Base{LayoutType: layoutType, Title: "T", Images: images})
	require.NoError(t, err)
	return s
}

func TestPlaceNoImages(t *testing.T) {
	f := newFixture(t)
	res, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, content(t, "nonexistent"))
	require.NoError(t, err)
	require.False(t, res.Placed())
	require.Empty(t, res.Errors)
}

func TestPlaceOneMissingOfFive(t *testing.T) {
	f := newFixture(t)
	five := layout.MustBlueprint("five", "", 5,
		layout.Placement{Left: 1, Top: 1, MaxWidth: 5, MaxHeight: 3},
		layout.Placement{Left: 7, Top: 1, MaxWidth: 5, MaxHeight: 3},
		layout.Placement{Left: 13, Top: 1, MaxWidth: 5, MaxHeight: 3},
		layout.Placement{Left: 1, Top: 6, MaxWidth: 5, MaxHeight: 3},
		layout.Placement{Left: 7, Top: 6, MaxWidth: 5, MaxHeight: 3})
	require.NoError(t, f.registry.Register(five))

	images := []string{
		f.png(t, "a.png", 40, 30),
		f.png(t, "b.png", 30, 40),
		"missing.png",
		f.png(t, "c.png", 50, 50),
		f.png(t, "d.png", 80, 20),
	}
	res, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, content(t, "five", images...))
	require.NoError(t, err)
	require.Equal(t, 4, res.Count)
	require.Equal(t, []string{"image not found: missing.png"}, res.Errors)
	require.Empty(t, res.Warnings)
	require.Len(t, f.pictures(), 4)
}

func TestPlaceFitsIntoSlot(t *testing.T) {
	f := newFixture(t)
	img := f.png(t, "wide.png", 400, 100)

	res, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, content(t, "single_wide", img))
	require.NoError(t, err)
	require.True(t, res.Placed())

	pics := f.pictures()
	require.Len(t, pics, 1)
	x, y, _ := pics[0].Offset()
	require.Equal(t, pptx.Cm(10.2), x)
	require.Equal(t, pptx.Cm(4.2), y)
	cx, cy, _ := pics[0].Extent()
	require.Equal(t, pptx.Cm(20), cx)
	require.Equal(t, pptx.Cm(20)/4, cy)
}

func TestPlaceCountMismatch(t *testing.T) {
	f := newFixture(t)
	placer := NewImagePlacer(f.registry, f.loader, f.logger)

	res, err := placer.Place(f.slide, content(t, "two_stack", f.png(t, "only.png", 10, 10)))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "expects 2 images, got 1")
	require.Empty(t, res.Errors)

	a, b, c := f.png(t, "a.png", 10, 10), f.png(t, "b.png", 10, 10), f.png(t, "c.png", 10, 10)
	res, err = placer.Place(f.slide, content(t, "single_wide", a, b, c))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "#2")
}

func TestPlaceUnknownBlueprint(t *testing.T) {
	f := newFixture(t)
	_, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, content(t, "nope", "a.png"))
	require.ErrorContains(t, err, `"nope" not found`)
}

func TestPlaceTitleSlideUsesTitleBlueprint(t *testing.T) {
	f := newFixture(t)
	cover := f.png(t, "cover.png", 100, 100)
	s, err := slide.NewTitle(slide.Base{LayoutType: "not_registered", Title: "T", Images: []string{cover}}, "sub", "")
	require.NoError(t, err)
	require.Equal(t, layout.TitleBlueprint, BlueprintFor(s))

	res, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, s)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	x, _, _ := f.pictures()[0].Offset()
	require.Equal(t, pptx.Cm(14.41), x)
}

func TestPlaceUnreadableImage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "broken.png"), []byte("garbage"), 0644))

	res, err := NewImagePlacer(f.registry, f.loader, f.logger).Place(f.slide, content(t, "single_wide", "broken.png"))
	require.NoError(t, err)
	require.False(t, res.Placed())
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "broken.png")
}

func (f *fixture) audio(t *testing.T) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "voice.mp3"), []byte("ID3\x03fake mp3"), 0644))
	return "voice.mp3"
}

func TestPlaceAudioAutoplay(t *testing.T) {
	f := newFixture(t)
	res := NewMediaPlacer(f.loader, f.logger).PlaceAudio(f.slide, f.audio(t), true)
	require.True(t, res.Placed())
	require.Empty(t, res.Errors)

	pics := f.pictures()
	require.Len(t, pics, 1)
	_, y, _ := pics[0].Offset()
	require.Equal(t, pptx.Cm(-10), y)
	cx, cy, _ := pics[0].Extent()
	require.Equal(t, pptx.Cm(1), cx)
	require.Equal(t, pptx.Cm(1), cy)
}

func TestPlaceAudioMissing(t *testing.T) {
	f := newFixture(t)
	res := NewMediaPlacer(f.loader, f.logger).PlaceAudio(f.slide, "absent.mp3", true)
	require.False(t, res.Placed())
	require.Equal(t, []string{"audio not found: absent.mp3"}, res.Errors)
	require.Empty(t, f.pictures())
}

// bareSlide embeds media without a timing node, as some templates'
// slides arrive.
type bareSlide struct {
	*pptx.Slide
	poster pptx.Image
}

func (s bareSlide) AddMovie(m pptx.Movie, r pptx.Rect) (*pptx.Shape, error) {
	return s.Slide.AddPicture(s.poster, r)
}

func TestPlaceAudioWithoutTiming(t *testing.T) {
	f := newFixture(t)
	poster := f.png(t, "poster.png", 4, 4)
	data, err := os.ReadFile(filepath.Join(f.dir, poster))
	require.NoError(t, err)
	target := bareSlide{Slide: f.slide, poster: pptx.Image{Name: poster, Format: "png", Data: data, Width: 4, Height: 4}}

	res := NewMediaPlacer(f.loader, f.logger).PlaceAudio(target, f.audio(t), true)
	require.True(t, res.Placed())
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "timing element not found for media shape_id=")
	require.Len(t, f.pictures(), 1)
}

func TestResultMerge(t *testing.T) {
	var total Result
	total.Merge(Result{Count: 2, Errors: []string{"a"}})
	total.Merge(Result{Count: 1, Warnings: []string{"w"}})
	require.Equal(t, Result{Count: 3, Errors: []string{"a"}, Warnings: []string{"w"}}, total)
}

func TestNewPlacersDefaultLogger(t *testing.T) {
	require.Same(t, log.Default(), NewImagePlacer(layout.NewRegistry(), nil, nil).log)
	require.Same(t, log.Default(), NewMediaPlacer(nil, nil).log)
}
