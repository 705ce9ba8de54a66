package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/slide"
)

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", apperr.New(apperr.CodeUnsupported, "unsupported config format %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// File is the serialized form of a Presentation.
type File struct {
	TemplatePath string         `json:"template_path,omitempty" yaml:"template_path,omitempty" toml:"template_path,omitempty"`
	OutputPath   string         `json:"output_path,omitempty" yaml:"output_path,omitempty" toml:"output_path,omitempty"`
	LayoutName   string         `json:"layout_name,omitempty" yaml:"layout_name,omitempty" toml:"layout_name,omitempty"`
	Slides       []slide.Record `json:"slides" yaml:"slides" toml:"slides"`
}

// Load reads and validates the config at path. Slide records are turned
// into slides by f.
func Load(path string, f *slide.Factory) (*Presentation, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.CodeNotFound, err, "config not found: %s", path)
		}
		return nil, apperr.Wrap(apperr.CodeIO, err, "reading config %s", path)
	}
	p, err := Decode(data, format, f)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidConfig, err, "invalid config %s", path)
	}
	return p, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format, f *slide.Factory) (*Presentation, error) {
	var file File
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		return nil, apperr.New(apperr.CodeUnsupported, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}
	slides, err := f.CreateAll(file.Slides)
	if err != nil {
		return nil, err
	}
	return New(file.TemplatePath, file.OutputPath, file.LayoutName, slides)
}

// ToFile converts p to its serialized form.
func ToFile(p *Presentation) File {
	file := File{
		TemplatePath: p.TemplatePath,
		OutputPath:   p.OutputPath,
		LayoutName:   p.LayoutName,
		Slides:       make([]slide.Record, len(p.Slides)),
	}
	for i, s := range p.Slides {
		file.Slides[i] = s.Record()
	}
	return file
}

// Encode serializes p in the given format.
func Encode(p *Presentation, format Format) ([]byte, error) {
	file := ToFile(p)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(file)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, apperr.New(apperr.CodeUnsupported, "unsupported config format %q", format)
}

// Save writes p to path, choosing the format from the extension.
func Save(p *Presentation, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(p, format)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "encoding config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Wrap(apperr.CodeIO, err, "writing config %s", path)
	}
	return nil
}
