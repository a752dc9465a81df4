package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/models"
)

// SearchResults is the output of the search command
type SearchResults struct {
	Query   string         `json:"query" yaml:"query"`
	Filter  string         `json:"filter" yaml:"filter"`
	Count   int            `json:"count" yaml:"count"`
	Entries []models.Entry `json:"entries" yaml:"entries"`
}

var (
	searchFilter string
	searchLimit  int
	searchWidth  int
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query> <source> <target> | search <query> <project.mctp>",
		Short: "Find entries by key, source or target text",
		Long: `List the entries whose key, source or target contains the query.

Matching ignores case. An empty query lists every entry that passes the filter.

Filters:
  all           - every entry (default)
  translated    - entries with a target of their own
  untranslated  - entries whose target is blank or equals the source

Examples:
  # Find entries mentioning "diamond"
  langtable search diamond en_us.json ja_jp.json

  # List everything still untranslated in a project
  langtable search "" mod.mctp --filter untranslated

  # First 20 matches as YAML
  langtable search sword mod.mctp --limit 20 -o yaml`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runSearch,
	}

	cmd.Flags().StringVarP(&searchFilter, "filter", "f", "all", "Entry filter (all, translated, untranslated)")
	cmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Show at most this many entries (0 for no limit)")
	cmd.Flags().IntVarP(&searchWidth, "width", "w", 40, "Column width for source and target text")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	mode, err := cli.ValidateFilterMode(searchFilter)
	if err != nil {
		return err
	}

	query := args[0]
	doc, err := commandContext(cmd).OpenDocument(args[1:])
	if err != nil {
		return err
	}
	doc.SetMode(mode)
	doc.SetQuery(query)

	entries := doc.Visible()
	if searchLimit > 0 && len(entries) > searchLimit {
		entries = entries[:searchLimit]
	}

	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, SearchResults{
			Query:   query,
			Filter:  mode.String(),
			Count:   len(entries),
			Entries: entries,
		})
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching entries")
		return nil
	}

	tf := cli.NewTableFormatter(out)
	tf.Header("KEY", "SOURCE", "TARGET")
	for _, e := range entries {
		tf.Row(e.Key,
			cli.TruncateString(cli.OneLine(e.Source), searchWidth),
			cli.TruncateString(cli.OneLine(e.Target), searchWidth))
	}
	tf.Flush()

	fmt.Fprintf(out, "\n%d of %d entries\n", len(entries), len(doc.Visible()))
	return nil
}
