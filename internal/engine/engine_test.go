package engine

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/config"
	"github.com/ivlev/autoslide/internal/layout"
	"github.com/ivlev/autoslide/internal/pptx"
	"github.com/ivlev/autoslide/internal/pptx/pptxtest"
	"github.com/ivlev/autoslide/internal/resource"
	"github.com/ivlev/autoslide/internal/slide"
)

type testEnv struct {
	dir      string
	template string
	registry *layout.Registry
	builder  *Builder
}

func newEnv(t *testing.T, tpl pptxtest.Template) *testEnv {
	t.Helper()
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.pptx")
	tpl.Write(t, tplPath)

	reg := layout.NewRegistry()
	require.NoError(t, layout.RegisterDefaults(reg))
	r, err := resource.NewDirResolver(dir)
	require.NoError(t, err)
	b := NewBuilder(reg, resource.NewLoader(r), log.New(io.Discard))
	return &testEnv{dir: dir, template: tplPath, registry: reg, builder: b}
}

func (e *testEnv) writePNG(t *testing.T, name string) string {
	t.Helper()
	f, err := os.Create(filepath.Join(e.dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	return name
}

func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0644))
	return name
}

func mustConfig(t *testing.T, records ...slide.Record) *config.Presentation {
	t.Helper()
	slides, err := slide.NewFactory().CreateAll(records)
	require.NoError(t, err, "slides")
	cfg, err := config.New("", "", "", slides)
	require.NoError(t, err, "config")
	return cfg
}

func countPictures(s *pptx.Slide) int {
	n := 0
	for _, sh := range s.Shapes() {
		if sh.Kind() == "pic" {
			n++
		}
	}
	return n
}

func placeholderText(t *testing.T, s *pptx.Slide, idx int) string {
	t.Helper()
	ph, ok := s.Placeholder(idx)
	require.True(t, ok, "placeholder %d missing", idx)
	return ph.Text()
}

func TestBuildMissingLayoutSkipsOnlyThatSlide(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	cfg := mustConfig(t,
		slide.Record{LayoutType: "single_wide", Title: "One"},
		slide.Record{LayoutType: "single_wide", Title: "Two", LayoutName: "NoSuchLayout"},
		slide.Record{LayoutType: "single_wide", Title: "Three"},
	)

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	require.Len(t, prs.Slides(), 2)

	errs := env.builder.Errors()
	require.Len(t, errs, 1)
	assert.Regexp(t, `^error creating slide 2 \('Two'\):`, errs[0])
	assert.Contains(t, errs[0], "VideoLayout, TitleLayout")

	assert.Equal(t, "3", placeholderText(t, prs.Slides()[1], config.ContentNumberIdx), "third slide keeps its number")
}

func TestBuildOneMissingImageOfFive(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	var slots []layout.Placement
	for i := 0; i < 5; i++ {
		slots = append(slots, layout.Placement{Left: float64(i) * 6, Top: 2, MaxWidth: 5, MaxHeight: 5})
	}
	require.NoError(t, env.registry.Register(layout.MustBlueprint("five_row", "", 5, slots...)))

	images := []string{
		env.writePNG(t, "1.png"), env.writePNG(t, "2.png"), "gone.png",
		env.writePNG(t, "4.png"), env.writePNG(t, "5.png"),
	}
	cfg := mustConfig(t, slide.Record{LayoutType: "five_row", Title: "Gallery", Images: images})

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	assert.Equal(t, 4, countPictures(prs.Slides()[0]))

	errs := env.builder.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "image not found: gone.png")

	out := filepath.Join(env.dir, "out.pptx")
	require.NoError(t, env.builder.Save(prs, out))
	again, err := pptx.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 4, countPictures(again.Slides()[0]), "pictures after save")
}

func TestBuildFillsPlaceholdersAndNotes(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	env.writeFile(t, "intro.md", "# Welcome\n\n- point **one**\n- point two\n")
	cover := env.writePNG(t, "cover.png")

	cfg := mustConfig(t,
		slide.Record{SlideType: slide.KindTitle, LayoutType: "single_wide", Title: "Series",
			Subtitle: "Episode 4", SeriesNumber: "4", Images: []string{cover}, NotesSource: "intro.md"},
		slide.Record{LayoutType: "single_wide", Title: "Body", NotesSource: "plain *inline* notes"},
	)

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	require.Empty(t, env.builder.Errors())

	titleSlide, body := prs.Slides()[0], prs.Slides()[1]
	assert.Equal(t, slide.TitleLayoutName, titleSlide.Layout().Name())
	checks := []struct {
		s    *pptx.Slide
		idx  int
		want string
	}{
		{titleSlide, config.TitleLayoutTitleIdx, "Series"},
		{titleSlide, config.TitleLayoutNumberIdx, "1"},
		{titleSlide, config.TitleLayoutSubtitleIdx, "Episode 4"},
		{body, config.ContentTitleIdx, "Body"},
		{body, config.ContentNumberIdx, "2"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, placeholderText(t, c.s, c.idx), "placeholder %d", c.idx)
	}
	assert.Equal(t, 1, countPictures(titleSlide), "cover picture")

	n, err := titleSlide.Notes()
	require.NoError(t, err)
	assert.Equal(t, "Welcome\npoint one\npoint two", n.Text())
	n, _ = body.Notes()
	assert.Equal(t, "plain inline notes", n.Text())
}

func TestBuildTouchesExistingNotes(t *testing.T) {
	env := newEnv(t, pptxtest.Template{Layouts: []pptxtest.Layout{pptxtest.VideoLayout()}, Slides: 2})
	cfg := mustConfig(t, slide.Record{LayoutType: "single_wide", Title: "New"})

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	slides := prs.Slides()
	require.Len(t, slides, 3)
	for i, s := range slides {
		assert.True(t, s.HasNotes(), "slide %d has no notes page", i+1)
	}
}

func TestBuildTemplateErrors(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	cfg := mustConfig(t, slide.Record{LayoutType: "single_wide", Title: "A"})

	_, err := env.builder.Build(cfg, filepath.Join(env.dir, "absent.pptx"))
	assert.True(t, apperr.Is(err, apperr.CodeNotFound), "got %v", err)

	broken := env.writeFile(t, "broken.pptx", "PK garbage")
	_, err = env.builder.Build(cfg, filepath.Join(env.dir, broken))
	assert.True(t, apperr.Is(err, apperr.CodeTemplate), "got %v", err)
}

func TestBuildSlideLevelFailures(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	img := env.writePNG(t, "a.png")
	cfg := mustConfig(t,
		slide.Record{LayoutType: "unregistered", Title: "Bad blueprint", Images: []string{img}},
		slide.Record{LayoutType: "single_wide", Title: "Bad notes", NotesSource: "missing.md"},
		slide.Record{LayoutType: "single_wide", Title: "Audio", Audio: "missing.mp3"},
	)

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	errs := env.builder.Errors()
	require.Len(t, errs, 3)
	wants := []string{"error creating slide 1 ('Bad blueprint')", "error creating slide 2 ('Bad notes')", "slide 3: audio not found: missing.mp3"}
	for i, want := range wants {
		assert.Contains(t, errs[i], want, "error %d", i)
	}
	assert.Len(t, prs.Slides(), 3)
}

func TestBuildResetsErrorsAndKeepsWarnings(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	bad := mustConfig(t, slide.Record{LayoutType: "single_wide", Title: "A", Images: []string{"nope.png"}})
	_, err := env.builder.Build(bad, env.template)
	require.NoError(t, err)
	require.Len(t, env.builder.Errors(), 1)

	img := env.writePNG(t, "only.png")
	good := mustConfig(t, slide.Record{LayoutType: "two_stack", Title: "B", Images: []string{img}})
	_, err = env.builder.Build(good, env.template)
	require.NoError(t, err)
	assert.Empty(t, env.builder.Errors(), "errors not reset")
	assert.Len(t, env.builder.Warnings(), 1, "count warning")
}

func TestBuildWithAudio(t *testing.T) {
	env := newEnv(t, pptxtest.Default())
	env.writeFile(t, "voice.mp3", "ID3 fake audio")
	cfg := mustConfig(t, slide.Record{LayoutType: "single_wide", Title: "Talk", Audio: "voice.mp3"})

	prs, err := env.builder.Build(cfg, env.template)
	require.NoError(t, err)
	require.Empty(t, env.builder.Errors())
	assert.Equal(t, 1, countPictures(prs.Slides()[0]), "media object")
}

func TestNewBuilderDefaults(t *testing.T) {
	b := NewBuilder(layout.NewRegistry(), nil, nil)
	assert.Same(t, log.Default(), b.log)
	assert.True(t, b.Autoplay)
	assert.NotNil(t, b.Images)
	assert.NotNil(t, b.Media)
}
