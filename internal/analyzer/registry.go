package analyzer

import "fmt"

// NewFormatter returns the formatter for the named output style.
func NewFormatter(variant string) (Formatter, error) {
	switch variant {
	case "text", "":
		return TextFormatter{}, nil
	case "names":
		return NamesFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", variant)
	}
}
