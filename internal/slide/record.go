package slide

// Record is the untyped form of a slide as it appears in a config file.
// It carries the union of every variant's fields.
type Record struct {
	SlideType    string   `json:"slide_type,omitempty" yaml:"slide_type,omitempty" toml:"slide_type,omitempty"`
	LayoutType   string   `json:"layout_type" yaml:"layout_type" toml:"layout_type"`
	Title        string   `json:"title" yaml:"title" toml:"title"`
	NotesSource  string   `json:"notes_source,omitempty" yaml:"notes_source,omitempty" toml:"notes_source,omitempty"`
	Images       []string `json:"images,omitempty" yaml:"images,omitempty" toml:"images,omitempty"`
	LayoutName   string   `json:"layout_name,omitempty" yaml:"layout_name,omitempty" toml:"layout_name,omitempty"`
	Audio        string   `json:"audio,omitempty" yaml:"audio,omitempty" toml:"audio,omitempty"`
	Subtitle     string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	SeriesNumber string   `json:"series_number,omitempty" yaml:"series_number,omitempty" toml:"series_number,omitempty"`

	// NotesText is the legacy spelling of NotesSource, read but never written.
	NotesText string `json:"notes_text,omitempty" yaml:"notes_text,omitempty" toml:"notes_text,omitempty"`
}

func (r Record) base() Base {
	notes := r.NotesSource
	if notes == "" {
		notes = r.NotesText
	}
	return Base{
		LayoutType:  r.LayoutType,
		Title:       r.Title,
		NotesSource: notes,
		Images:      append([]string(nil), r.Images...),
		LayoutName:  r.LayoutName,
		Audio:       r.Audio,
	}
}
