package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/langtable/langtable/pkg/markup"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/selection"
)

// Suggestion is a machine translation waiting to be applied
type Suggestion struct {
	Key      string
	Text     string
	Detected string
}

// EditorPane shows the selected entry: the styled source, the editable
// target, glossary hints and any pending suggestion.
type EditorPane struct {
	textarea    textarea.Model
	key         string
	source      string
	original    string
	chips       bool
	width       int
	height      int
	suggestion  *Suggestion
	translating string
}

// NewEditorPane creates an editor pane. chips shows raw markup codes in the source preview.
func NewEditorPane(chips bool) *EditorPane {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.Placeholder = "Translation"
	ta.SetWidth(40)
	ta.SetHeight(5)

	return &EditorPane{textarea: ta, chips: chips}
}

// SetSize sets the outer size including the border
func (e *EditorPane) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.textarea.SetWidth(max(width-6, 10))
	e.textarea.SetHeight(min(max(height/3, 3), 10))
}

// Key is the entry being edited, or empty
func (e *EditorPane) Key() string {
	return e.key
}

// Load shows sel. Unsaved text for the same key survives while focused.
func (e *EditorPane) Load(sel selection.Selection) {
	if sel.Empty() {
		e.key, e.source, e.original = "", "", ""
		e.textarea.SetValue("")
		e.suggestion = nil
		return
	}
	if sel.Key == e.key && e.textarea.Focused() && e.Dirty() {
		return
	}
	if sel.Key != e.key {
		e.suggestion = nil
	}
	e.key, e.source, e.original = sel.Key, sel.Source, sel.Target
	e.textarea.SetValue(sel.Target)
}

// Value is the text in the target editor
func (e *EditorPane) Value() string {
	return e.textarea.Value()
}

// SetValue replaces the target editor text
func (e *EditorPane) SetValue(v string) {
	e.textarea.SetValue(v)
}

// Dirty reports unsaved changes to the target
func (e *EditorPane) Dirty() bool {
	return e.textarea.Value() != e.original
}

// MarkSaved records the current text as the stored target
func (e *EditorPane) MarkSaved() {
	e.original = e.textarea.Value()
}

// Revert drops unsaved changes
func (e *EditorPane) Revert() {
	e.textarea.SetValue(e.original)
}

// Focus gives the target editor keyboard focus
func (e *EditorPane) Focus() tea.Cmd {
	return e.textarea.Focus()
}

func (e *EditorPane) Blur() {
	e.textarea.Blur()
}

func (e *EditorPane) Focused() bool {
	return e.textarea.Focused()
}

// SetTranslating marks a translation request in flight for key
func (e *EditorPane) SetTranslating(key string) {
	e.translating = key
}

// SetSuggestion stores s if it belongs to the shown entry
func (e *EditorPane) SetSuggestion(s Suggestion) bool {
	if e.translating == s.Key {
		e.translating = ""
	}
	if s.Key != e.key {
		return false
	}
	e.suggestion = &s
	return true
}

// Suggestion returns the pending suggestion for the shown entry
func (e *EditorPane) Suggestion() (Suggestion, bool) {
	if e.suggestion == nil || e.suggestion.Key != e.key {
		return Suggestion{}, false
	}
	return *e.suggestion, true
}

// ClearSuggestion drops the pending suggestion
func (e *EditorPane) ClearSuggestion() {
	e.suggestion = nil
}

// Update forwards input to the textarea
func (e *EditorPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

// View renders the pane
func (e *EditorPane) View(hints []models.GlossaryTerm, active bool) string {
	inner := max(e.width-4, 10)
	if e.key == "" {
		return paneStyle(active).
			Width(max(e.width-2, 10)).
			Height(max(e.height-2, 3)).
			Render(PlaceholderStyle.Render("Select an entry to edit"))
	}

	var sections []string

	title := GetActiveHeaderStyle(active).Render(e.key)
	if e.Dirty() {
		title += " " + UntranslatedMarkStyle.Render("[modified]")
	}
	sections = append(sections, title, "")

	sections = append(sections, HeaderStyle.Render("Source"))
	sections = append(sections, wordwrap.String(markup.Styled(e.source, e.chips), inner))
	sections = append(sections, "")

	sections = append(sections, HeaderStyle.Render("Target"))
	sections = append(sections, e.textarea.View())

	if len(hints) > 0 {
		sections = append(sections, "", HeaderStyle.Render("Glossary"))
		for _, h := range hints {
			sections = append(sections, DescriptionStyle.Render(fmt.Sprintf("  %s → %s", h.Key, h.Value)))
		}
	}

	if e.translating == e.key {
		sections = append(sections, "", PlaceholderStyle.Render("Translating..."))
	} else if s, ok := e.Suggestion(); ok {
		label := "Suggestion"
		if s.Detected != "" {
			label = fmt.Sprintf("Suggestion (from %s)", s.Detected)
		}
		sections = append(sections, "", HeaderStyle.Render(label))
		sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary)).
			Render(wordwrap.String(s.Text, inner)))
		sections = append(sections, HelpStyle.Render("a apply (list) · ctrl+y apply (editor)"))
	}

	return paneStyle(active).
		Width(max(e.width-2, 10)).
		Height(max(e.height-2, 3)).
		Render(strings.Join(sections, "\n"))
}
