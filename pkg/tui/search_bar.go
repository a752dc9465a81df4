package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar filters the list by free text
type SearchBar struct {
	input    textinput.Model
	isActive bool
	width    int
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search keys, source and target..."
	ti.CharLimit = 200
	ti.Width = 50

	return &SearchBar{
		input: ti,
	}
}

// SetActive sets whether the search bar is the active pane
func (s *SearchBar) SetActive(active bool) tea.Cmd {
	s.isActive = active
	if active {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

// Active reports whether the search bar has focus
func (s *SearchBar) Active() bool {
	return s.isActive
}

// SetWidth sets the width for the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// borders, padding and the icon
	s.input.Width = max(width-12, 10)
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue sets the search text
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
}

// Update handles tea messages for the search bar
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s *SearchBar) View() string {
	borderColor := ColorInactive
	if s.isActive {
		borderColor = ColorActive
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(max(s.width-4, 10)).
		Padding(0, 1)

	var searchIcon string
	if s.isActive {
		searchIcon = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1).
			Render("⌕")
	} else {
		searchIcon = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Bold(true).
			Render(" ⌕ ")
	}

	searchContent := lipgloss.JoinHorizontal(lipgloss.Center, searchIcon, " ", s.input.View())

	outerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return outerPadding.Render(searchStyle.Render(searchContent))
}

// Reset clears the search input
func (s *SearchBar) Reset() {
	s.input.SetValue("")
}
