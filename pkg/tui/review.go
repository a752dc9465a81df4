package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/langtable/langtable/pkg/models"
)

// RenderDiff renders the change from before to after as an inline word diff
func RenderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(DiffDeleteStyle.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(DiffInsertStyle.Render(d.Text))
		default:
			b.WriteString(NormalStyle.Render(d.Text))
		}
	}
	return b.String()
}

// editLines renders one block per edit: the key, then the wrapped diff
func editLines(edits []models.Edit, width int) []string {
	lines := make([]string, 0, len(edits))
	for _, e := range edits {
		diff := wordwrap.String(RenderDiff(e.Before, e.After), max(width-4, 10))
		lines = append(lines, HeaderStyle.Render(e.Key)+"\n"+indent.String(diff, 2))
	}
	return lines
}

// ReviewModel lists the staged edits of a guided replace before commit
type ReviewModel struct {
	viewport viewport.Model
	edits    []models.Edit
	width    int
	height   int
	hidden   bool
}

// NewReviewModel creates an empty review
func NewReviewModel() *ReviewModel {
	return &ReviewModel{viewport: viewport.New(60, 10)}
}

// SetEdits replaces the edits shown and scrolls to the top
func (r *ReviewModel) SetEdits(edits []models.Edit) {
	r.edits = edits
	r.hidden = false
	r.refresh()
	r.viewport.GotoTop()
}

// Len returns the number of edits shown
func (r *ReviewModel) Len() int {
	return len(r.edits)
}

// Hidden reports whether the user put the review aside to browse the list
func (r *ReviewModel) Hidden() bool     { return r.hidden }
func (r *ReviewModel) SetHidden(h bool) { r.hidden = h }

// SetSize fits the dialog into the window
func (r *ReviewModel) SetSize(width, height int) {
	r.width = min(max(width-8, 30), 100)
	r.height = max(height-10, 5)
	r.viewport.Width = r.width - 4
	r.viewport.Height = r.height - 6
	r.refresh()
}

func (r *ReviewModel) refresh() {
	r.viewport.SetContent(strings.Join(editLines(r.edits, r.viewport.Width), "\n\n"))
}

// Update scrolls the list of edits
func (r *ReviewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

// View renders the review dialog
func (r *ReviewModel) View(search, replacement string) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWarning)).
		Render(fmt.Sprintf("Review %d staged changes", len(r.edits)))
	sub := DescriptionStyle.Render(fmt.Sprintf("%q → %q", search, replacement))
	help := HelpStyle.Render("y commit · esc cancel · tab browse list · ↑/↓ scroll")

	body := lipgloss.JoinVertical(lipgloss.Left, title, sub, "", r.viewport.View(), "", help)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(0, 1).
		Width(r.width).
		Render(body)
}
