package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/table"
)

// Version is shown in the header; the cmd package overrides it
var Version = "dev"

func renderHeader(width int, title string, counts table.Counts, visible int, mode search.Mode) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	translated := counts.Total - counts.Untranslated
	stats := DescriptionStyle.Render(fmt.Sprintf("%d/%d translated · %d shown", translated, counts.Total, visible))
	modeChip := GetChipStyle(modeColor(mode)).Render(mode.String())

	left := lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render(title), "  ", modeChip, "  ", stats)
	logo := logoStyle.Render("langtable " + Version)

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(logo)
	if gap < 1 {
		return headerPadding.Render(left)
	}
	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		lipgloss.NewStyle().Width(gap).Render(""),
		logo,
	))
}

func modeColor(mode search.Mode) string {
	switch mode {
	case search.ModeUntranslated:
		return ColorWarning
	case search.ModeTranslated:
		return ColorSuccess
	default:
		return ColorInactive
	}
}
