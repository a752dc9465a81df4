package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/files"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
)

// GlossaryItem is one numbered glossary term in command output
type GlossaryItem struct {
	Index int    `json:"index" yaml:"index"`
	Term  string `json:"term" yaml:"term"`
	Value string `json:"translation" yaml:"translation"`
}

var glossaryFilter string

// NewGlossaryCommand creates the glossary command
func NewGlossaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage a project's glossary",
		Long: `List, add and remove the glossary terms stored in a project bundle.

Terms are numbered from 1 in the order they were added. The editor shows
the terms found in the selected entry's source text as hints.

Examples:
  # List all terms
  langtable glossary list mod.mctp

  # Add a term
  langtable glossary add mod.mctp "Redstone" "レッドストーン"

  # Remove the third term
  langtable glossary remove mod.mctp 3`,
	}

	list := &cobra.Command{
		Use:   "list <project.mctp>",
		Short: "List glossary terms",
		Args:  cobra.ExactArgs(1),
		RunE:  runGlossaryList,
	}
	list.Flags().StringVarP(&glossaryFilter, "filter", "f", "", "Only show terms or translations containing this text")

	add := &cobra.Command{
		Use:   "add <project.mctp> <term> <translation>",
		Short: "Add a glossary term",
		Args:  cobra.ExactArgs(3),
		RunE:  runGlossaryAdd,
	}

	remove := &cobra.Command{
		Use:     "remove <project.mctp> <index>",
		Aliases: []string{"rm"},
		Short:   "Remove a glossary term by number",
		Args:    cobra.ExactArgs(2),
		RunE:    runGlossaryRemove,
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func openGlossaryDocument(cmd *cobra.Command, path string, opts ...document.Option) (*document.Document, error) {
	if !strings.HasSuffix(strings.ToLower(path), files.ProjectExtension) {
		return nil, fmt.Errorf("glossaries are kept in %s projects: %s", files.ProjectExtension, path)
	}
	return commandContext(cmd).OpenDocument([]string{path}, opts...)
}

func runGlossaryList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	doc, err := openGlossaryDocument(cmd, args[0])
	if err != nil {
		return err
	}

	items := numberTerms(doc.Glossary().List(), glossaryFilter)
	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, items)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No glossary terms")
		return nil
	}
	tf := cli.NewTableFormatter(out)
	tf.Header("#", "TERM", "TRANSLATION")
	for _, it := range items {
		tf.Row(strconv.Itoa(it.Index), it.Term, it.Value)
	}
	tf.Flush()
	return nil
}

// numberTerms keeps each term's position in the full list, so the numbers
// stay valid for remove even when a filter hides some terms
func numberTerms(terms []models.GlossaryTerm, filter string) []GlossaryItem {
	m := search.NewMatcher(filter)
	items := make([]GlossaryItem, 0, len(terms))
	for i, t := range terms {
		if !m.Blank() && !m.Contains(t.Key) && !m.Contains(t.Value) {
			continue
		}
		items = append(items, GlossaryItem{Index: i + 1, Term: t.Key, Value: t.Value})
	}
	return items
}

func runGlossaryAdd(cmd *cobra.Command, args []string) error {
	doc, err := openGlossaryDocument(cmd, args[0], document.WithNotifier(printNotices(commandContext(cmd))))
	if err != nil {
		return err
	}
	return doc.AddTerm(args[1], args[2])
}

func runGlossaryRemove(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid term number: %s", args[1])
	}
	doc, err := openGlossaryDocument(cmd, args[0], document.WithNotifier(printNotices(commandContext(cmd))))
	if err != nil {
		return err
	}
	return doc.RemoveTerm(n - 1)
}
