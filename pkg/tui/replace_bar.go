package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReplaceKind says what the replace bar starts when submitted
type ReplaceKind int

const (
	ReplaceGuided ReplaceKind = iota
	ReplaceBulk
)

func (k ReplaceKind) String() string {
	if k == ReplaceBulk {
		return "replace all"
	}
	return "replace"
}

// ReplaceBar collects a search term and a replacement
type ReplaceBar struct {
	search  textinput.Model
	replace textinput.Model
	field   int // 0: search, 1: replace
	kind    ReplaceKind
	active  bool
	width   int
}

// NewReplaceBar creates an inactive replace bar
func NewReplaceBar() *ReplaceBar {
	s := textinput.New()
	s.Placeholder = "find"
	s.Prompt = "Find: "
	s.CharLimit = 200

	r := textinput.New()
	r.Placeholder = "replace with"
	r.Prompt = "With: "
	r.CharLimit = 200

	return &ReplaceBar{search: s, replace: r}
}

// Open shows the bar for kind, prefilled with the current search text
func (b *ReplaceBar) Open(kind ReplaceKind, search string) tea.Cmd {
	b.kind = kind
	b.active = true
	b.field = 0
	if search != "" && b.search.Value() == "" {
		b.search.SetValue(search)
	}
	b.replace.Blur()
	return b.search.Focus()
}

// Close hides the bar and keeps its text for next time
func (b *ReplaceBar) Close() {
	b.active = false
	b.search.Blur()
	b.replace.Blur()
}

func (b *ReplaceBar) Active() bool     { return b.active }
func (b *ReplaceBar) Kind() ReplaceKind { return b.kind }

// Terms returns the search term and the replacement
func (b *ReplaceBar) Terms() (string, string) {
	return b.search.Value(), b.replace.Value()
}

// SetWidth sets the rendered width
func (b *ReplaceBar) SetWidth(width int) {
	b.width = width
	w := max((width-10)/2-8, 10)
	b.search.Width = w
	b.replace.Width = w
}

// Toggle moves focus between the two fields
func (b *ReplaceBar) Toggle() tea.Cmd {
	if b.field == 0 {
		b.field = 1
		b.search.Blur()
		return b.replace.Focus()
	}
	b.field = 0
	b.replace.Blur()
	return b.search.Focus()
}

// Update forwards input to the focused field
func (b *ReplaceBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if b.field == 0 {
		b.search, cmd = b.search.Update(msg)
	} else {
		b.replace, cmd = b.replace.Update(msg)
	}
	return cmd
}

// View renders the bar
func (b *ReplaceBar) View() string {
	label := GetChipStyle(ColorPrimary).Render(b.kind.String())
	if b.kind == ReplaceBulk {
		label = GetChipStyle(ColorWarning).Render(b.kind.String())
	}
	content := lipgloss.JoinHorizontal(lipgloss.Center,
		label, "  ", b.search.View(), "   ", b.replace.View())

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Width(max(b.width-4, 10)).
		Padding(0, 1)

	return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Render(style.Render(content))
}
