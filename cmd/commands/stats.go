package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
)

// StatsResult is the output of the stats command
type StatsResult struct {
	Total        int     `json:"total" yaml:"total"`
	Translated   int     `json:"translated" yaml:"translated"`
	Untranslated int     `json:"untranslated" yaml:"untranslated"`
	Percent      float64 `json:"percent" yaml:"percent"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <source> <target> | stats <project.mctp>",
		Short: "Show translation progress",
		Long: `Count the entries of a table pair and how many are still untranslated.

An entry is untranslated when its target is blank or identical to its source.

Examples:
  # Progress of a table pair
  langtable stats en_us.json ja_jp.json

  # Progress of a project as JSON
  langtable stats mod.mctp -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runStats,
	}
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	doc, err := commandContext(cmd).OpenDocument(args)
	if err != nil {
		return err
	}

	counts := doc.Counts()
	result := StatsResult{
		Total:        counts.Total,
		Translated:   counts.Translated,
		Untranslated: counts.Untranslated,
	}
	if counts.Total > 0 {
		result.Percent = float64(counts.Translated) * 100 / float64(counts.Total)
	}

	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, result)
	}

	fmt.Fprintf(out, "Entries:       %d\n", result.Total)
	fmt.Fprintf(out, "Translated:    %d\n", result.Translated)
	fmt.Fprintf(out, "Untranslated:  %d\n", result.Untranslated)
	fmt.Fprintf(out, "Progress:      %.1f%%\n", result.Percent)
	return nil
}
