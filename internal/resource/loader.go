package resource

import (
	"os"
	"strings"

	"github.com/ivlev/autoslide/internal/apperr"
)

// Loader reads notes and locates images and audio for slides.
type Loader struct {
	resolver *Resolver
}

func NewLoader(r *Resolver) *Loader {
	return &Loader{resolver: r}
}

func (l *Loader) Resolver() *Resolver { return l.resolver }

// IsMarkdownPath reports whether a notes source names a markdown file
// rather than holding inline text.
func IsMarkdownPath(source string) bool {
	return strings.HasSuffix(strings.ToLower(source), ".md")
}

// LoadNotes returns the contents of source when it names a .md file and
// source itself otherwise.
func (l *Loader) LoadNotes(source string) (string, error) {
	if !IsMarkdownPath(source) {
		return source, nil
	}
	path, err := l.resolver.ResolveAndCheck(source)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeIO, err, "reading markdown file %s", path)
	}
	return string(data), nil
}

func (l *Loader) ResolveImage(path string) (string, error) {
	return l.resolver.ResolveAndCheck(path)
}

func (l *Loader) ResolveAudio(path string) (string, error) {
	return l.resolver.ResolveAndCheck(path)
}

// Exists reports whether path resolves to an existing file.
func (l *Loader) Exists(path string) bool {
	_, err := l.resolver.ResolveAndCheck(path)
	return err == nil
}
