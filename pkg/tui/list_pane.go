package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/langtable/langtable/pkg/markup"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/replace"
	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/table"
)

// ListPane renders the filtered entries and tracks the cursor
type ListPane struct {
	cursor     int
	offset     int
	width      int
	height     int
	valueWidth int
}

// NewListPane creates a list pane. valueWidth caps the source column.
func NewListPane(valueWidth int) *ListPane {
	if valueWidth <= 0 {
		valueWidth = 40
	}
	return &ListPane{valueWidth: valueWidth}
}

// SetSize sets the outer size including the border
func (l *ListPane) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// rows is the number of entry rows that fit
func (l *ListPane) rows() int {
	return max(l.height-4, 1) // border and column header
}

// Cursor returns the cursor index into the visible entries
func (l *ListPane) Cursor() int {
	return l.cursor
}

// Move shifts the cursor by delta within n entries
func (l *ListPane) Move(delta, n int) {
	l.SetCursor(l.cursor+delta, n)
}

// SetCursor places the cursor at i, clamped to n entries
func (l *ListPane) SetCursor(i, n int) {
	if n == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = min(max(i, 0), n-1)
	rows := l.rows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = min(l.offset, max(n-rows, 0))
}

// PageSize is the cursor jump for page up and down
func (l *ListPane) PageSize() int {
	return l.rows()
}

// Follow moves the cursor onto key if it is visible, otherwise clamps it
func (l *ListPane) Follow(entries []models.Entry, key string) {
	for i, e := range entries {
		if e.Key == key {
			l.SetCursor(i, len(entries))
			return
		}
	}
	l.SetCursor(l.cursor, len(entries))
}

// Selected returns the entry under the cursor
func (l *ListPane) Selected(entries []models.Entry) (models.Entry, bool) {
	if l.cursor < 0 || l.cursor >= len(entries) {
		return models.Entry{}, false
	}
	return entries[l.cursor], true
}

// columns splits the inner width into key, source and target widths
func (l *ListPane) columns() (int, int, int) {
	inner := max(l.width-4, 20) - 2 // marker column
	key := max(inner/4, 8)
	src := min(l.valueWidth, max((inner-key)/2, 8))
	tgt := max(inner-key-src-2, 8)
	return key, src, tgt
}

// View renders the visible window of entries
func (l *ListPane) View(entries []models.Entry, query string, session *replace.Session, active bool) string {
	keyW, srcW, tgtW := l.columns()

	var b strings.Builder
	header := "  " + runewidth.FillRight("KEY", keyW) + " " + runewidth.FillRight("SOURCE", srcW) + " TARGET"
	b.WriteString(GetActiveHeaderStyle(active).Render(header))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(EmptyInactiveStyle.Render("  No entries match"))
	}

	end := min(l.offset+l.rows(), len(entries))
	for i := l.offset; i < end; i++ {
		e := entries[i]
		target := e.Target
		if staged, ok := session.PendingValue(e.Key); ok {
			target = staged
		}
		row := rowMarker(e, session) +
			highlightCell(e.Key, query, keyW) + " " +
			highlightCell(markup.Strip(e.Source), query, srcW) + " " +
			highlightCell(target, query, tgtW)
		if i == l.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	footer := DescriptionStyle.Render(fmt.Sprintf(" %d/%d", min(l.cursor+1, len(entries)), len(entries)))
	content := lipgloss.JoinVertical(lipgloss.Left, b.String(), footer)
	return paneStyle(active).
		Width(max(l.width-2, 10)).
		Height(max(l.height-2, 3)).
		Render(content)
}

// rowMarker is the two-cell status column
func rowMarker(e models.Entry, session *replace.Session) string {
	if session.Active() && session.IsCandidate(e.Key) {
		if _, ok := session.PendingValue(e.Key); ok {
			return StagedStyle.Render("✓ ")
		}
		if cur, ok := session.Current(); ok && cur.Key == e.Key {
			return CandidateStyle.Render("▶ ")
		}
		return CandidateStyle.Render("◆ ")
	}
	if table.IsUntranslated(e) {
		return UntranslatedMarkStyle.Render("● ")
	}
	return "  "
}

// highlightCell fits text into width cells on one line, marking query matches
func highlightCell(text, query string, width int) string {
	text = strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\t", " ").Replace(text)
	text = runewidth.Truncate(text, width, "…")

	var b strings.Builder
	for _, span := range search.Highlight(text, query) {
		if span.Match {
			b.WriteString(MatchStyle.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	pad := width - runewidth.StringWidth(text)
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}
