package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string   // shown in orange
	Details     []string // pre-rendered lines, clipped to MaxDetails
	MaxDetails  int
	Destructive bool // Yes is red, No is green
	YesLabel    string
	NoLabel     string
	Width       int
}

// ConfirmationModel is a modal yes/no dialog
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
	if m.config.MaxDetails == 0 {
		m.config.MaxDetails = 10
	}
}

// Hide deactivates the confirmation without running a callback
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 6

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(titleStyle.Render(m.config.Title))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(m.config.Message))
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(m.config.Warning))
		b.WriteString("\n")
	}

	if len(m.config.Details) > 0 {
		b.WriteString("\n")
		shown := m.config.Details
		if len(shown) > m.config.MaxDetails {
			shown = shown[:m.config.MaxDetails]
		}
		for _, d := range shown {
			b.WriteString(d)
			b.WriteString("\n")
		}
		if rest := len(m.config.Details) - len(shown); rest > 0 {
			b.WriteString(DescriptionStyle.Render(fmt.Sprintf("  … and %d more", rest)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatConfirmOptions(m.config.Destructive))
	b.WriteString("  ")
	b.WriteString(DescriptionStyle.Render(fmt.Sprintf("(%s / %s)",
		strings.ToLower(m.config.YesLabel), strings.ToLower(m.config.NoLabel))))

	return borderStyle.Width(width).Render(b.String())
}

func formatConfirmOptions(destructive bool) string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[y]")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[n]")
	return yes + " / " + no
}
