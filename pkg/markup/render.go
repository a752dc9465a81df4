package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a visual run with the formatting in effect at that point.
// Code segments are the raw code markers, shown apart from the text they affect.
type Segment struct {
	Text   string
	Code   bool
	Color  string
	Styles []Style
}

// Has reports whether style s is active on the segment
func (s Segment) Has(style Style) bool {
	for _, st := range s.Styles {
		if st == style {
			return true
		}
	}
	return false
}

// Render walks tokens and tracks cumulative formatting.
// A color persists until the next color or reset; styles stack until reset.
func Render(tokens []Token) []Segment {
	var (
		segments []Segment
		color    string
		styles   []Style
	)

	for _, tok := range tokens {
		if tok.Kind == KindCode {
			switch {
			case tok.Reset:
				color = ""
				styles = nil
			case tok.Color != "":
				color = tok.Color
			default:
				for _, st := range tok.Styles {
					if !containsStyle(styles, st) {
						styles = append(styles, st)
					}
				}
			}
			segments = append(segments, Segment{Text: tok.Content, Code: true, Color: color, Styles: cloneStyles(styles)})
			continue
		}

		if tok.Content == "" {
			continue
		}
		segments = append(segments, Segment{Text: tok.Content, Color: color, Styles: cloneStyles(styles)})
	}
	return segments
}

func containsStyle(styles []Style, s Style) bool {
	for _, st := range styles {
		if st == s {
			return true
		}
	}
	return false
}

func cloneStyles(styles []Style) []Style {
	if len(styles) == 0 {
		return nil
	}
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ChipStyle renders raw code markers
var ChipStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("238")).
	Foreground(lipgloss.Color("250"))

// Styled renders text for the terminal, coloring each run.
// When chips is false the code markers are hidden.
func Styled(text string, chips bool) string {
	var b strings.Builder
	for _, seg := range Render(Parse(text)) {
		if seg.Code {
			if chips {
				b.WriteString(ChipStyle.Render(seg.Text))
			}
			continue
		}
		b.WriteString(segmentStyle(seg).Render(seg.Text))
	}
	return b.String()
}

func segmentStyle(seg Segment) lipgloss.Style {
	style := lipgloss.NewStyle()
	if seg.Color != "" {
		style = style.Foreground(lipgloss.Color(seg.Color))
	}
	for _, st := range seg.Styles {
		switch st {
		case Bold:
			style = style.Bold(true)
		case Strikethrough:
			style = style.Strikethrough(true)
		case Underline:
			style = style.Underline(true)
		case Italic:
			style = style.Italic(true)
		}
	}
	return style
}

// Legend renders the code alphabet as colored samples, one per code
func Legend() []string {
	lines := make([]string, 0, len(alphabet))
	for _, c := range alphabet {
		sample := Prefix + string(c.Char) + c.Name
		lines = append(lines, ChipStyle.Render(Prefix+string(c.Char))+" "+Styled(sample, false))
	}
	return lines
}
