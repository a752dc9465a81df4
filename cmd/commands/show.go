package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/markup"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/table"
)

// ShowResult is the output of the show command
type ShowResult struct {
	models.Entry `yaml:",inline"`
	Untranslated bool                  `json:"untranslated" yaml:"untranslated"`
	Glossary     []models.GlossaryTerm `json:"glossary,omitempty" yaml:"glossary,omitempty"`
}

var showRaw bool

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <key> <source> <target> | show <key> <project.mctp>",
		Short: "Display one entry",
		Long: `Display the source and target of one entry, with § codes rendered.

For projects, glossary terms found in the source text are listed too.

Examples:
  # Show an entry
  langtable show item.minecraft.diamond en_us.json ja_jp.json

  # Show the raw strings with codes
  langtable show item.minecraft.diamond mod.mctp --raw

  # Output as JSON
  langtable show item.minecraft.diamond mod.mctp -o json`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runShow,
	}

	cmd.Flags().BoolVar(&showRaw, "raw", false, "Print strings without rendering § codes")

	return cmd
}

// selectEntry opens the document for args and selects key
func selectEntry(cmd *cobra.Command, key string, args []string, opts ...document.Option) (*document.Document, error) {
	doc, err := commandContext(cmd).OpenDocument(args, opts...)
	if err != nil {
		return nil, err
	}
	if err := doc.Select(key); err != nil {
		return nil, err
	}
	return doc, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	doc, err := selectEntry(cmd, args[0], args[1:])
	if err != nil {
		return err
	}

	sel := doc.Selection()
	result := ShowResult{
		Entry:    models.Entry{Key: sel.Key, Source: sel.Source, Target: sel.Target},
		Glossary: doc.Hints(),
	}
	result.Untranslated = table.IsUntranslated(result.Entry)

	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, result)
	}

	render := func(s string) string {
		if showRaw {
			return s
		}
		return markup.Styled(s, commandContext(cmd).LoadSettingsWithDefault().UI.ShowCodeChips)
	}

	fmt.Fprintf(out, "Key:     %s\n", result.Key)
	fmt.Fprintf(out, "Source:  %s\n", render(result.Source))
	if result.Untranslated {
		fmt.Fprintf(out, "Target:  %s (untranslated)\n", render(result.Target))
	} else {
		fmt.Fprintf(out, "Target:  %s\n", render(result.Target))
	}
	if len(result.Glossary) > 0 {
		fmt.Fprintln(out, "\nGlossary:")
		for _, t := range result.Glossary {
			fmt.Fprintf(out, "  %s → %s\n", t.Key, t.Value)
		}
	}
	return nil
}
