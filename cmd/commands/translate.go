package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/translate"
)

// TranslateResult is the output of the translate command
type TranslateResult struct {
	Key              string `json:"key,omitempty" yaml:"key,omitempty"`
	Text             string `json:"text" yaml:"text"`
	Translation      string `json:"translation" yaml:"translation"`
	From             string `json:"from" yaml:"from"`
	To               string `json:"to" yaml:"to"`
	DetectedLanguage string `json:"detected_language,omitempty" yaml:"detected_language,omitempty"`
	Applied          bool   `json:"applied" yaml:"applied"`
}

var (
	translateFrom  string
	translateTo    string
	translateKey   string
	translateApply bool
)

// NewTranslateCommand creates the translate command
func NewTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <text> | translate --key <key> <source> <target> | translate --key <key> <project.mctp>",
		Short: "Ask the translation service for a suggestion",
		Long: `Send a text, or the source text of one entry, to the translation endpoint.

The endpoint is set with LANGTABLE_TRANSLATE_ENDPOINT. The language pair
comes from the settings file unless --from or --to is given. A source
language of "auto" lets the service detect it.

Examples:
  # Translate a phrase
  langtable translate "Crafting Table" --to ja

  # Suggest a translation for one entry
  langtable translate --key block.minecraft.stone en_us.json ja_jp.json

  # Write the suggestion into the target table
  langtable translate --key block.minecraft.stone mod.mctp --apply`,
		Args: func(cmd *cobra.Command, args []string) error {
			if translateKey != "" {
				return cobra.RangeArgs(1, 2)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: runTranslate,
	}

	cmd.Flags().StringVar(&translateFrom, "from", "", "Source language (default from settings)")
	cmd.Flags().StringVar(&translateTo, "to", "", "Target language (default from settings)")
	cmd.Flags().StringVarP(&translateKey, "key", "k", "", "Translate the source text of this entry")
	cmd.Flags().BoolVar(&translateApply, "apply", false, "Write the suggestion to the entry's target (needs --key)")

	return cmd
}

func runTranslate(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if translateApply && translateKey == "" {
		return fmt.Errorf("--apply needs --key")
	}

	c := commandContext(cmd)
	from, to := c.LanguagePair()
	if translateFrom != "" {
		from = translateFrom
	}
	if translateTo != "" {
		to = translateTo
	}

	result := TranslateResult{From: from, To: to}

	var doc *document.Document
	if translateKey != "" {
		var opts []document.Option
		if format == "text" {
			opts = append(opts, document.WithNotifier(printNotices(c)))
		}
		doc, err = c.OpenDocument(args, opts...)
		if err != nil {
			return err
		}
		if err := doc.Select(translateKey); err != nil {
			return err
		}
		result.Key = translateKey
		result.Text = doc.Selection().Source
	} else {
		result.Text = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := c.Translator().Translate(ctx, translate.Request{Text: result.Text, From: from, To: to})
	if err != nil {
		return err
	}
	result.Translation = res.Text
	result.DetectedLanguage = res.DetectedLanguage

	if translateApply {
		if err := doc.ApplySuggestion(res.Text); err != nil {
			return err
		}
		result.Applied = true
	}

	out := cmd.OutOrStdout()
	if format != "text" {
		return cli.OutputResults(out, format, result)
	}
	fmt.Fprintln(out, result.Translation)
	if result.DetectedLanguage != "" && from == translate.AutoDetect {
		cli.PrintInfo("Detected language: %s", result.DetectedLanguage)
	}
	return nil
}
