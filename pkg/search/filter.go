// Package search filters a string table by translation status and free text.
package search

import (
	"fmt"
	"strings"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/table"
)

// Mode restricts entries by translation status
type Mode int

const (
	ModeAll Mode = iota
	ModeUntranslated
	ModeTranslated
)

var modeNames = map[Mode]string{
	ModeAll:          "all",
	ModeUntranslated: "untranslated",
	ModeTranslated:   "translated",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Next cycles all -> untranslated -> translated -> all
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

// ParseMode converts a mode name. The empty string means all.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ModeAll, nil
	case "untranslated", "todo":
		return ModeUntranslated, nil
	case "translated", "done":
		return ModeTranslated, nil
	default:
		return ModeAll, fmt.Errorf("invalid filter mode: %s (must be: all, translated, or untranslated)", s)
	}
}

// Accepts reports whether e passes the mode restriction
func (m Mode) Accepts(e models.Entry) bool {
	switch m {
	case ModeUntranslated:
		return table.IsUntranslated(e)
	case ModeTranslated:
		return !table.IsUntranslated(e)
	default:
		return true
	}
}

// Filter returns the entries passing mode and, for a non-blank query, whose
// key, source or target contains the query. Input order is preserved.
func Filter(entries []models.Entry, query string, mode Mode) []models.Entry {
	m := NewMatcher(query)
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !mode.Accepts(e) {
			continue
		}
		if !m.Blank() && !m.Contains(e.Key) && !m.Contains(e.Source) && !m.Contains(e.Target) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTable is Filter over a table snapshot
func FilterTable(t *table.Table, query string, mode Mode) []models.Entry {
	return Filter(t.Entries(), query, mode)
}

// Span is a piece of highlighted text
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text around occurrences of query, keeping the original casing.
// A blank query yields the whole text as one unmatched span.
func Highlight(text, query string) []Span {
	m := NewMatcher(query)
	idx := m.Indexes(text)
	if len(idx) == 0 {
		return []Span{{Text: text}}
	}

	spans := make([]Span, 0, len(idx)*2+1)
	last := 0
	for _, r := range idx {
		if r[0] > last {
			spans = append(spans, Span{Text: text[last:r[0]]})
		}
		spans = append(spans, Span{Text: text[r[0]:r[1]], Match: true})
		last = r[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
