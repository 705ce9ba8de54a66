package notes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\n ", ""},
		{"plain", "Just text", "Just text"},
		{"emphasis", "Some **bold** and *italic* text", "Some bold and italic text"},
		{"heading and list", "# Title\n\n- Item **bold**\n- Other", "Title\nItem bold\nOther"},
		{"ordered list", "1. first\n2. second", "first\nsecond"},
		{"link keeps text", "See [the docs](https://example.com) now", "See the docs now"},
		{"autolink", "Visit <https://example.com>", "Visit https://example.com"},
		{"inline code", "Run `go test` first", "Run go test first"},
		{"fenced code", "Before\n\n```go\nfmt.Println(1)\n```\n\nAfter", "Before\nfmt.Println(1)\nAfter"},
		{"blank lines collapse", "One\n\n\n\nTwo", "One\nTwo"},
		{"soft breaks become lines", "line one\nline two", "line one\nline two"},
		{"quote", "> quoted *text*", "quoted text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanPreserveStructure(t *testing.T) {
	got := CleanPreserveStructure("First paragraph.\n\n\nSecond **one**.\n\n## Heading")
	require.Equal(t, "First paragraph.\n\nSecond one.\n\nHeading", got)
	require.Empty(t, CleanPreserveStructure(""))
}
