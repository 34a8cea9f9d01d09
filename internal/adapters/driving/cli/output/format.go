// Package output prints command results as text, aligned tables or
// structured documents, optionally filtered through a jq query.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText prints one "header: value" block per row.
	FormatText Format = "text"
	// FormatTable prints aligned columns.
	FormatTable Format = "table"
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON, one document per row.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ErrQueryNeedsStructured is returned when a jq query is combined with a
// text or table format.
var ErrQueryNeedsStructured = errors.New("--query requires json, ndjson or yaml output")

// ParseFormat converts a string to a Format. An empty string selects the
// default for w, see DefaultFormat.
func ParseFormat(s string, w io.Writer) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultFormat(w), nil
	case FormatText:
		return FormatText, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON:
		return FormatNDJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid --output format %q (expected text|table|json|ndjson|yaml)", s)
	}
}

// DefaultFormat returns FormatTable when w is a terminal and FormatText
// otherwise.
func DefaultFormat(w io.Writer) Format {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatTable
	}
	return FormatText
}

// IsStructured reports whether the format is machine-readable.
func IsStructured(format Format) bool {
	switch format {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Table is the human-readable rendering of a result list.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Printer writes results in one format.
type Printer struct {
	w      io.Writer
	format Format
	query  string
}

// NewPrinter creates a Printer. query is a jq program applied to
// structured output; empty disables it.
func NewPrinter(w io.Writer, format Format, query string) *Printer {
	return &Printer{w: w, format: format, query: strings.TrimSpace(query)}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Print outputs data. Structured formats encode data itself; text and
// table formats print table.
func (p *Printer) Print(data any, table Table) error {
	if p.query != "" && !IsStructured(p.format) {
		return ErrQueryNeedsStructured
	}
	switch p.format {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return p.printStructured(data)
	case FormatTable:
		return p.printTable(table)
	case FormatText:
		return p.printText(table)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printStructured(data any) error {
	doc, err := normalise(data)
	if err != nil {
		return err
	}

	values := []any{doc}
	if p.query != "" {
		values, err = runQuery(p.query, doc)
		if err != nil {
			return err
		}
	} else if list, ok := doc.([]any); ok && p.format == FormatNDJSON {
		values = list
	}

	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		for _, v := range values {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	default:
		enc := json.NewEncoder(p.w)
		enc.SetEscapeHTML(false)
		if p.format == FormatJSON {
			enc.SetIndent("", "  ")
		}
		for _, v := range values {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// normalise converts data into the generic maps and slices gojq works on.
func normalise(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	return doc, nil
}

func runQuery(query string, doc any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	var out []any
	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *Printer) printTable(table Table) error {
	if len(table.Rows) == 0 {
		_, err := fmt.Fprintln(p.w, "No results.")
		return err
	}
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (p *Printer) printText(table Table) error {
	for i, row := range table.Rows {
		if i > 0 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		for j, cell := range row {
			header := ""
			if j < len(table.Headers) {
				header = strings.ToLower(table.Headers[j])
			}
			if _, err := fmt.Fprintf(p.w, "%s: %s\n", header, cell); err != nil {
				return err
			}
		}
	}
	return nil
}
