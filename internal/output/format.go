package output

import "fmt"

// Format selects how reports are rendered.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatSimple
)

var formatAliases = map[string]Format{
	"t":      FormatTable,
	"table":  FormatTable,
	"Table":  FormatTable,
	"j":      FormatJSON,
	"json":   FormatJSON,
	"Json":   FormatJSON,
	"JSON":   FormatJSON,
	"s":      FormatSimple,
	"simple": FormatSimple,
	"Simple": FormatSimple,
	"plain":  FormatSimple,
}

// ParseFormat resolves an output format name.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[s]
	if !ok {
		return FormatTable, fmt.Errorf("invalid output format: %q (want table, json or simple)", s)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSimple:
		return "simple"
	default:
		return "table"
	}
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}
