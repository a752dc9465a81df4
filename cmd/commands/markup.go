package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/markup"
)

// MarkupSegment is one styled run in command output
type MarkupSegment struct {
	Text   string   `json:"text" yaml:"text"`
	Code   bool     `json:"code,omitempty" yaml:"code,omitempty"`
	Color  string   `json:"color,omitempty" yaml:"color,omitempty"`
	Styles []string `json:"styles,omitempty" yaml:"styles,omitempty"`
}

var (
	markupLegend bool
	markupStrip  bool
	markupChips  bool
	markupInsert string
	markupAt     int
)

// NewMarkupCommand creates the markup command
func NewMarkupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markup [text]",
		Short: "Preview § formatting codes",
		Long: `Render a string that uses § formatting codes the way the editor shows it.

Codes 0-9 and a-f set a color, k-o set a style and r resets both.

Examples:
  # Preview a colored string
  langtable markup "§6Gold §lbold§r plain"

  # Show the code markers too
  langtable markup "§cWarning" --chips

  # Remove all codes
  langtable markup "§aGreen" --strip

  # Insert a bold code before the fifth character
  langtable markup "Hello World" --insert l --at 4

  # List every code
  langtable markup --legend`,
		Args: func(cmd *cobra.Command, args []string) error {
			if markupLegend {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: runMarkup,
	}

	cmd.Flags().BoolVar(&markupLegend, "legend", false, "List the code alphabet")
	cmd.Flags().BoolVar(&markupStrip, "strip", false, "Print the text without codes")
	cmd.Flags().BoolVar(&markupChips, "chips", false, "Show code markers")
	cmd.Flags().StringVar(&markupInsert, "insert", "", "Insert this code character before rendering")
	cmd.Flags().IntVar(&markupAt, "at", 0, "Character offset for --insert")

	return cmd
}

func runMarkup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if markupLegend {
		for _, line := range markup.Legend() {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	text := args[0]
	if markupInsert != "" {
		if len(markupInsert) != 1 {
			return fmt.Errorf("--insert takes a single code character, got %q", markupInsert)
		}
		text, err = markup.Insert(text, markupAt, markupInsert[0])
		if err != nil {
			return err
		}
	}

	if format != "text" {
		return cli.OutputResults(out, format, markupSegments(text))
	}

	switch {
	case markupStrip:
		fmt.Fprintln(out, markup.Strip(text))
	case markupInsert != "":
		fmt.Fprintln(out, text)
		fmt.Fprintln(out, markup.Styled(text, markupChips))
	default:
		fmt.Fprintln(out, markup.Styled(text, markupChips))
	}
	return nil
}

func markupSegments(text string) []MarkupSegment {
	segs := markup.Render(markup.Parse(text))
	out := make([]MarkupSegment, 0, len(segs))
	for _, s := range segs {
		ms := MarkupSegment{Text: s.Text, Code: s.Code, Color: s.Color}
		for _, st := range s.Styles {
			ms.Styles = append(ms.Styles, st.String())
		}
		out = append(out, ms)
	}
	return out
}
