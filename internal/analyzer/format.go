package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Formatter writes a Report in one output style.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// TextFormatter prints the layout list followed by a placeholder table.
// Zero styles render plain text.
type TextFormatter struct {
	HeaderStyle lipgloss.Style
	BorderStyle lipgloss.Style
}

func (f TextFormatter) Format(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "Layouts (%d):\n", len(r.Layouts))
	for i, name := range r.Layouts {
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
	}
	if r.Layout == nil {
		return nil
	}
	fmt.Fprintf(w, "\nPlaceholders of %s:\n", r.Layout.Name)
	if len(r.Layout.Placeholders) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}

	rows := make([][]string, 0, len(r.Layout.Placeholders))
	for _, ph := range r.Layout.Placeholders {
		rows = append(rows, []string{strconv.Itoa(ph.Idx), ph.Type, ph.Name, ph.Sample})
	}
	header := f.HeaderStyle.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(f.BorderStyle).
		Headers("IDX", "TYPE", "NAME", "TEXT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// NamesFormatter prints layout names only, one per line.
type NamesFormatter struct{}

func (NamesFormatter) Format(w io.Writer, r *Report) error {
	for _, name := range r.Layouts {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints the report as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Format(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
