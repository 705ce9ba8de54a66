// Package resource resolves config-relative paths and loads the files
// slides refer to.
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/autoslide/internal/apperr"
)

// Resolver resolves paths relative to the directory of a config file.
type Resolver struct {
	baseDir string
}

// NewResolver anchors relative paths at the directory containing configPath.
func NewResolver(configPath string) (*Resolver, error) {
	if configPath == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "config path must not be empty")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "resolving %s", configPath)
	}
	if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
		return nil, apperr.New(apperr.CodeInvalidInput, "config path is a directory: %s", configPath)
	}
	return &Resolver{baseDir: filepath.Dir(abs)}, nil
}

// NewDirResolver anchors relative paths at dir.
func NewDirResolver(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "resolving %s", dir)
	}
	return &Resolver{baseDir: abs}, nil
}

func (r *Resolver) BaseDir() string { return r.baseDir }

// Resolve returns path unchanged when absolute, else joined to the base dir.
func (r *Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.baseDir, path)
}

// ResolveAndCheck resolves path and fails with CodeNotFound if nothing
// exists there.
func (r *Resolver) ResolveAndCheck(path string) (string, error) {
	resolved := r.Resolve(path)
	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", apperr.Wrap(apperr.CodeNotFound, err, "file not found: %s (base dir %s)", path, r.baseDir)
		}
		return "", apperr.Wrap(apperr.CodeIO, err, "checking %s", path)
	}
	return resolved, nil
}

// MakeRelative expresses an absolute path relative to the base dir. Paths
// outside the base dir are rejected.
func (r *Resolver) MakeRelative(path string) (string, error) {
	rel, err := filepath.Rel(r.baseDir, r.Resolve(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside %s", path, r.baseDir)
	}
	return rel, nil
}
