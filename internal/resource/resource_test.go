package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/autoslide/internal/apperr"
)

func setup(t *testing.T) (string, *Loader) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(cfg, []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "a.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Hello"), 0644))

	r, err := NewResolver(cfg)
	require.NoError(t, err)
	return dir, NewLoader(r)
}

func TestResolve(t *testing.T) {
	dir, l := setup(t)
	r := l.Resolver()

	require.Equal(t, filepath.Join(dir, "img", "a.png"), r.Resolve("img/a.png"))
	abs := filepath.Join(dir, "elsewhere.png")
	require.Equal(t, abs, r.Resolve(abs))
}

func TestResolveAndCheck(t *testing.T) {
	dir, l := setup(t)

	got, err := l.ResolveImage("img/a.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "img", "a.png"), got)

	_, err = l.ResolveImage("img/missing.png")
	require.True(t, apperr.Is(err, apperr.CodeNotFound))
	require.ErrorContains(t, err, "img/missing.png")
	require.ErrorIs(t, err, os.ErrNotExist)

	require.True(t, l.Exists("notes.md"))
	require.False(t, l.Exists("audio.mp3"))
}

func TestMakeRelative(t *testing.T) {
	dir, l := setup(t)
	r := l.Resolver()

	rel, err := r.MakeRelative(filepath.Join(dir, "img", "a.png"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("img", "a.png"), rel)

	_, err = r.MakeRelative(filepath.Join(filepath.Dir(dir), "other.png"))
	require.Error(t, err)
}

func TestNewResolverRejectsDirectory(t *testing.T) {
	_, err := NewResolver(t.TempDir())
	require.Error(t, err)
	_, err = NewResolver("")
	require.Error(t, err)
}

func TestLoadNotes(t *testing.T) {
	_, l := setup(t)

	text, err := l.LoadNotes("notes.md")
	require.NoError(t, err)
	require.Equal(t, "# Hello", text)

	text, err = l.LoadNotes("Just say hi")
	require.NoError(t, err)
	require.Equal(t, "Just say hi", text)

	_, err = l.LoadNotes("absent.MD")
	require.True(t, apperr.Is(err, apperr.CodeNotFound))

	text, err = l.LoadNotes("")
	require.NoError(t, err)
	require.Empty(t, text)
}
