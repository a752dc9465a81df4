package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
)

var (
	clipboardSource bool
	clipboardPrint  bool
)

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <key> <source> <target> | clipboard <key> <project.mctp>",
		Short: "Copy an entry's text to the clipboard",
		Long: `Copy the target text of an entry to the system clipboard.

The raw string is copied, § codes included.

Examples:
  # Copy the translation
  langtable clipboard gui.done en_us.json ja_jp.json

  # Copy the source text instead
  langtable clipboard gui.done mod.mctp --source`,
		Args:    cobra.RangeArgs(2, 3),
		Aliases: []string{"clip", "copy"},
		RunE:    runClipboard,
	}

	cmd.Flags().BoolVarP(&clipboardSource, "source", "s", false, "Copy the source text")
	cmd.Flags().BoolVarP(&clipboardPrint, "print", "p", false, "Also print the copied text")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	doc, err := selectEntry(cmd, args[0], args[1:])
	if err != nil {
		return err
	}

	sel := doc.Selection()
	content, side := sel.Target, "target"
	if clipboardSource {
		content, side = sel.Source, "source"
	}

	if err := writeClipboard(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	if clipboardPrint {
		fmt.Fprintln(cmd.OutOrStdout(), content)
	}
	cli.PrintSuccess("Copied %s of %s to clipboard", side, sel.Key)
	return nil
}
