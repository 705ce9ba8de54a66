package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/slide"
)

const jsonConfig = `{
  "template_path": "tpl/base.pptx",
  "slides": [
    {"slide_type": "title_youtube", "layout_type": "single_wide", "title": "Go in practice",
     "subtitle": "Episode 1", "series_number": "1", "images": ["cover.png"], "notes_source": "intro.md"},
    {"layout_type": "two_stack", "title": "Two charts", "images": ["a.png", "b.png"],
     "notes_text": "legacy notes", "audio": "voice.mp3"},
    {"layout_type": "single_wide", "title": "Two charts", "layout_name": "WideLayout"}
  ]
}`

const yamlConfig = `
output_path: out/deck.pptx
layout_name: MyLayout
slides:
  - layout_type: single_tall
    title: Portrait
    images: [p.png]
`

const tomlConfig = `
output_path = "deck.pptx"

[[slides]]
layout_type = "three_stack"
title = "Three"
images = ["1.png", "2.png", "3.png"]

[[slides]]
slide_type = "title_youtube"
layout_type = "single_wide"
title = "Cover"
subtitle = "Sub"
images = ["c.png"]
`

func TestDecodeJSON(t *testing.T) {
	p, err := Decode([]byte(jsonConfig), FormatJSON, slide.NewFactory())
	require.NoError(t, err)

	require.Equal(t, "tpl/base.pptx", p.TemplatePath)
	require.Equal(t, DefaultOutputPath, p.OutputPath)
	require.Equal(t, DefaultLayoutName, p.LayoutName)
	require.Len(t, p.Slides, 3)

	title, ok := p.Slides[0].(*slide.Title)
	require.True(t, ok)
	require.Equal(t, "Episode 1", title.Subtitle)
	require.Equal(t, slide.TitleLayoutName, p.LayoutNameFor(title))

	require.Equal(t, "legacy notes", p.Slides[1].Common().NotesSource)
	require.Equal(t, "voice.mp3", p.Slides[1].Common().Audio)
	require.Equal(t, DefaultLayoutName, p.LayoutNameFor(p.Slides[1]))
	require.Equal(t, "WideLayout", p.LayoutNameFor(p.Slides[2]))
}

func TestDecodeYAMLAndTOML(t *testing.T) {
	f := slide.NewFactory()

	p, err := Decode([]byte(yamlConfig), FormatYAML, f)
	require.NoError(t, err)
	require.Equal(t, "out/deck.pptx", p.OutputPath)
	require.Equal(t, "MyLayout", p.LayoutName)
	require.Equal(t, []string{"p.png"}, p.Slides[0].Common().Images)

	p, err = Decode([]byte(tomlConfig), FormatTOML, f)
	require.NoError(t, err)
	require.Len(t, p.Slides, 2)
	require.Equal(t, slide.KindTitle, p.Slides[1].Kind())
}

func TestDecodeErrors(t *testing.T) {
	f := slide.NewFactory()

	_, err := Decode([]byte(`{"slides": []}`), FormatJSON, f)
	require.ErrorContains(t, err, "slides must not be empty")

	_, err = Decode([]byte(`{"slides": [{"layout_type": "x"}]}`), FormatJSON, f)
	require.ErrorContains(t, err, "slide 1")

	_, err = Decode([]byte(`{"slides": [{"slide_type": "poll", "layout_type": "x", "title": "t"}]}`), FormatJSON, f)
	require.ErrorContains(t, err, "unknown slide_type")

	_, err = Decode([]byte(`{`), FormatJSON, f)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	f := slide.NewFactory()

	_, err := Load(filepath.Join(dir, "absent.json"), f)
	require.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = Load(filepath.Join(dir, "deck.ini"), f)
	require.True(t, apperr.Is(err, apperr.CodeUnsupported))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("slides: [}"), 0644))
	_, err = Load(bad, f)
	require.True(t, apperr.Is(err, apperr.CodeInvalidConfig))

	good := filepath.Join(dir, "deck.yml")
	require.NoError(t, os.WriteFile(good, []byte(yamlConfig), 0644))
	p, err := Load(good, f)
	require.NoError(t, err)
	require.Equal(t, "Portrait", p.Slides[0].Common().Title)
}

func TestSaveRoundTrip(t *testing.T) {
	f := slide.NewFactory()
	p, err := Decode([]byte(jsonConfig), FormatJSON, f)
	require.NoError(t, err)

	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "deck"+ext)
			require.NoError(t, Save(p, path))

			again, err := Load(path, f)
			require.NoError(t, err)
			require.Equal(t, p, again)
		})
	}
}

func TestWarnings(t *testing.T) {
	p, err := Decode([]byte(jsonConfig), FormatJSON, slide.NewFactory())
	require.NoError(t, err)

	require.Equal(t, []string{
		"duplicate titles: Two charts",
		"slide #3 ('Two charts') has no images",
	}, p.Warnings())
}
