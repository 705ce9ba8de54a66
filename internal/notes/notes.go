// Package notes turns Markdown speaker notes into plain text.
package notes

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Clean renders Markdown as plain text with one line per block or source
// line. Formatting is dropped, link and code text is kept and blank lines
// are removed.
func Clean(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var lines []string
	for _, block := range blocks(source) {
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// CleanPreserveStructure is like Clean but separates blocks with a blank line.
func CleanPreserveStructure(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var out []string
	for _, block := range blocks(source) {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return strings.Join(out, "\n\n")
}

// blocks returns the text of every leaf block in document order.
func blocks(source string) []string {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			out = append(out, inline(n, src))
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			out = append(out, rawLines(n, src))
			return ast.WalkSkipChildren, nil
		case ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func inline(block ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(src))
		case *ast.RawHTML, *ast.Image:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
