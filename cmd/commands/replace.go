package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/models"
)

// ReplaceResult is the output of the replace command
type ReplaceResult struct {
	Search      string        `json:"search" yaml:"search"`
	Replacement string        `json:"replacement" yaml:"replacement"`
	DryRun      bool          `json:"dry_run" yaml:"dry_run"`
	Applied     bool          `json:"applied" yaml:"applied"`
	Changes     []models.Edit `json:"changes" yaml:"changes"`
}

var replaceDryRun bool

// NewReplaceCommand creates the replace command
func NewReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <search> <replacement> <source> <target> | replace <search> <replacement> <project.mctp>",
		Short: "Replace text in every target value",
		Long: `Replace every occurrence of a term in the target values, ignoring case.

The planned changes are listed first and written only after confirmation.
Use --yes to skip the prompt, or --dry-run to only list the changes.
Use the editor for a match-by-match replace.

Examples:
  # Preview a replacement
  langtable replace "Creeper" "クリーパー" en_us.json ja_jp.json --dry-run

  # Replace without asking
  langtable replace "Creeper" "クリーパー" mod.mctp --yes`,
		Args: cobra.RangeArgs(3, 4),
		RunE: runReplace,
	}

	cmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "List the changes without writing them")

	return cmd
}

func runReplace(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	c := commandContext(cmd)
	var opts []document.Option
	if format == "text" {
		opts = append(opts, document.WithNotifier(printNotices(c)))
	}
	doc, err := c.OpenDocument(args[2:], opts...)
	if err != nil {
		return err
	}

	searchTerm, replaceTerm := args[0], args[1]
	plan, err := doc.PlanBulk(searchTerm, replaceTerm)
	if err != nil {
		return err
	}

	result := ReplaceResult{
		Search:      searchTerm,
		Replacement: replaceTerm,
		DryRun:      replaceDryRun,
		Changes:     plan.Changes(),
	}
	out := cmd.OutOrStdout()

	if plan.Len() == 0 {
		if format != "text" {
			return cli.OutputResults(out, format, result)
		}
		return nil
	}

	if format == "text" {
		printChanges(out, result.Changes)
	}

	if replaceDryRun {
		doc.DiscardBulk()
		if format != "text" {
			return cli.OutputResults(out, format, result)
		}
		return nil
	}

	ok, err := cli.Confirm(fmt.Sprintf("Apply %d changes?", plan.Len()), false)
	if err != nil {
		return err
	}
	if !ok {
		doc.DiscardBulk()
		return nil
	}

	if _, err := doc.ConfirmBulk(); err != nil {
		return err
	}
	result.Applied = true
	if format != "text" {
		return cli.OutputResults(out, format, result)
	}
	return nil
}

func printChanges(w io.Writer, changes []models.Edit) {
	for _, e := range changes {
		fmt.Fprintf(w, "%s\n", e.Key)
		fmt.Fprintf(w, "  - %s\n", cli.OneLine(e.Before))
		fmt.Fprintf(w, "  + %s\n", cli.OneLine(e.After))
	}
	fmt.Fprintln(w)
}
