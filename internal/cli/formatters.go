package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// TableFormatter writes aligned columns. Widths are measured in terminal
// cells so CJK text lines up.
type TableFormatter struct {
	w      io.Writer
	header []string
	rows   [][]string
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

// Header sets the table header
func (t *TableFormatter) Header(columns ...string) {
	t.header = columns
}

// Row adds a table row
func (t *TableFormatter) Row(values ...string) {
	t.rows = append(t.rows, values)
}

// Flush writes the table to output
func (t *TableFormatter) Flush() {
	widths := make([]int, len(t.header))
	measure := func(row []string) {
		for i, v := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}

	write := func(row []string) {
		var b strings.Builder
		for i, v := range row {
			if i == len(row)-1 {
				b.WriteString(v)
				break
			}
			b.WriteString(runewidth.FillRight(v, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(t.w, strings.TrimRight(b.String(), " "))
	}

	if len(t.header) > 0 {
		write(t.header)
		total := 0
		for _, w := range widths {
			total += w + 2
		}
		fmt.Fprintln(t.w, strings.Repeat("-", max(total-2, 0)))
	}
	for _, r := range t.rows {
		write(r)
	}
	t.rows = nil
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TruncateString shortens s to at most width terminal cells, ending in "...".
// ANSI sequences are not counted.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return truncate.String(s, uint(width))
	}
	return truncate.StringWithTail(s, uint(width), "...")
}

// PadRight pads s with spaces to width terminal cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// OneLine replaces line breaks so a value fits in a table cell
func OneLine(s string) string {
	return strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\t", " ").Replace(s)
}
