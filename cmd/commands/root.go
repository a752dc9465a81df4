package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/internal/config"
	"github.com/langtable/langtable/pkg/document"
)

type contextKey struct{}

var (
	rootQuiet    bool
	rootNoColor  bool
	rootYes      bool
	rootEnvFile  string
	rootLogLevel string
)

// NewRootCommand builds the langtable command tree
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "langtable [source target | project.mctp]",
		Short: "Terminal editor for game localization string tables",
		Long: `langtable edits the translation of a string table side by side with its source.

Tables are flat key/value files in JSON (.json) or key=value (.lang) format.
A project bundle (.mctp) keeps both tables and a glossary in one file.

Run with a source and a target file, or a project, to open the editor.`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetGlobalFlags(rootQuiet, rootNoColor, rootYes)

			var envFiles []string
			if rootEnvFile != "" {
				envFiles = append(envFiles, rootEnvFile)
			}
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			if rootLogLevel != "" {
				cfg.LogLevel = rootLogLevel
			}
			if _, err := config.SetupLogging(cfg, os.Stderr); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, contextKey{}, cli.NewCommandContext(cfg)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runEdit(cmd, args)
		},
	}

	root.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	root.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Suppress informational output")
	root.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&rootYes, "yes", "y", false, "Answer yes to confirmation prompts")
	root.PersistentFlags().StringVar(&rootEnvFile, "env-file", "", "Load environment from this file instead of .env")
	root.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		NewEditCommand(),
		NewStatsCommand(),
		NewSearchCommand(),
		NewShowCommand(),
		NewClipboardCommand(),
		NewReplaceCommand(),
		NewConvertCommand(),
		NewProjectCommand(),
		NewGlossaryCommand(),
		NewTranslateCommand(),
		NewMarkupCommand(),
		NewSettingsCommand(),
		NewVersionCommand(version),
	)
	return root
}

// commandContext returns the context set up by the root command, or a
// fresh one when a command runs on its own
func commandContext(cmd *cobra.Command) *cli.CommandContext {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(contextKey{}).(*cli.CommandContext); ok {
			return c
		}
	}
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("using default configuration")
		cfg = &config.Config{}
	}
	return cli.NewCommandContext(cfg)
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return "text", nil
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// printNotices echoes document notices on the terminal. Errors are
// returned to the caller instead.
func printNotices(c *cli.CommandContext) document.Notifier {
	catalog := c.Catalog()
	return document.NotifierFunc(func(n document.Notice) {
		text := n.Text(catalog)
		switch n.Level {
		case document.LevelSuccess:
			cli.PrintSuccess("%s", text)
		case document.LevelWarning:
			cli.PrintWarning("%s", text)
		case document.LevelInfo:
			cli.PrintInfo("%s", text)
		}
	})
}

// ErrorText renders err for the terminal in the configured UI language
func ErrorText(cmd *cobra.Command, err error) string {
	if cmd == nil {
		return err.Error()
	}
	return commandContext(cmd).Catalog().Error(err)
}
