package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241"
	ColorVeryDim  = "242"
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorDark     = "235"
	ColorPrimary  = "33" // Blue for primary actions
	ColorMatch    = "220"
	ColorInsert   = "35"
)

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	// Untranslated rows get a warning marker
	UntranslatedMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Bold(true)

	// Highlighted search matches
	MatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDark)).
			Background(lipgloss.Color(ColorMatch))

	// Pending guided-replace rows
	StagedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInsert)).
			Bold(true)

	CandidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary))

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	// Diff styles for the replace review
	DiffDeleteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)).
			Strikethrough(true)

	DiffInsertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInsert)).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))
)

// GetActiveHeaderStyle colors a pane header by focus
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// GetChipStyle renders a small colored label
func GetChipStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
}

func paneStyle(active bool) lipgloss.Style {
	if active {
		return ActiveBorderStyle
	}
	return InactiveBorderStyle
}
