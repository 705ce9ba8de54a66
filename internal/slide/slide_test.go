package slide

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentValidation(t *testing.T) {
	tests := []struct {
		name    string
		base    Base
		wantErr string
	}{
		{"valid", Base{LayoutType: "single_wide", Title: "Intro"}, ""},
		{"no title", Base{LayoutType: "single_wide"}, "title must not be empty"},
		{"no layout type", Base{Title: "Intro"}, "layout_type must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewContent(tt.base)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				require.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.Equal(t, KindContent, s.Kind())
		})
	}
}

func TestTitleFillsLayoutName(t *testing.T) {
	s, err := NewTitle(Base{LayoutType: "single_wide", Title: "Series", Images: []string{"cover.png"}}, "Episode one", "")
	require.NoError(t, err)
	require.Equal(t, TitleLayoutName, s.LayoutName)
}

func TestTitleRejectsOtherLayoutName(t *testing.T) {
	_, err := NewTitle(Base{LayoutType: "x", Title: "T", Images: []string{"a.png"}, LayoutName: "VideoLayout"}, "sub", "")
	require.ErrorContains(t, err, `must be "TitleLayout"`)
}

func TestTitleImageCount(t *testing.T) {
	for _, images := range [][]string{nil, {"a.png", "b.png"}} {
		_, err := NewTitle(Base{LayoutType: "x", Title: "T", Images: images}, "sub", "")
		require.ErrorContains(t, err, "exactly 1 image required")
	}
}

func TestTitleRequiresSubtitle(t *testing.T) {
	_, err := NewTitle(Base{LayoutType: "x", Title: "T", Images: []string{"a.png"}}, "", "")
	require.ErrorContains(t, err, "subtitle is required")
}

func TestFactoryDefaultsToContent(t *testing.T) {
	s, err := NewFactory().Create(Record{LayoutType: "single_wide", Title: "A"})
	require.NoError(t, err)
	require.IsType(t, &Content{}, s)
}

func TestFactoryUnknownKindListsKinds(t *testing.T) {
	_, err := NewFactory().Create(Record{SlideType: "poll", LayoutType: "x", Title: "A"})
	require.ErrorContains(t, err, "poll")
	require.ErrorContains(t, err, "content, title_youtube")
}

func TestFactoryRegister(t *testing.T) {
	f := NewFactory()
	require.Error(t, f.Register(KindContent, nil))

	require.NoError(t, f.Register("quote", func(r Record) (Slide, error) {
		return NewContent(r.base())
	}))
	require.Equal(t, []string{KindContent, KindTitle, "quote"}, f.Kinds())

	s, err := f.Create(Record{SlideType: "quote", LayoutType: "single_wide", Title: "Q"})
	require.NoError(t, err)
	require.Equal(t, "Q", s.Common().Title)
}

func TestFactoryLegacyNotesText(t *testing.T) {
	f := NewFactory()
	s, err := f.Create(Record{LayoutType: "x", Title: "A", NotesText: "legacy"})
	require.NoError(t, err)
	require.Equal(t, "legacy", s.Common().NotesSource)

	s, err = f.Create(Record{LayoutType: "x", Title: "A", NotesSource: "new", NotesText: "legacy"})
	require.NoError(t, err)
	require.Equal(t, "new", s.Common().NotesSource)
	require.Empty(t, s.Record().NotesText)
}

func TestRecordRoundTrip(t *testing.T) {
	records := []Record{
		{SlideType: KindContent, LayoutType: "two_stack", Title: "Two", NotesSource: "notes.md",
			Images: []string{"a.png", "b.png"}, LayoutName: "AltLayout", Audio: "voice.mp3"},
		{SlideType: KindTitle, LayoutType: "single_wide", Title: "Cover", Images: []string{"cover.png"},
			LayoutName: TitleLayoutName, Subtitle: "Part one", SeriesNumber: "3"},
	}
	f := NewFactory()
	for _, r := range records {
		t.Run(r.SlideType, func(t *testing.T) {
			s, err := f.Create(r)
			require.NoError(t, err)
			require.Equal(t, r.SlideType, s.Kind())
			require.Equal(t, r, s.Record())

			again, err := f.Create(s.Record())
			require.NoError(t, err)
			require.Equal(t, s, again)
		})
	}
}

func TestCreateAllReportsPosition(t *testing.T) {
	_, err := NewFactory().CreateAll([]Record{
		{LayoutType: "x", Title: "ok"},
		{LayoutType: "x"},
	})
	require.ErrorContains(t, err, "slide 2:")
}
