package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/files"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
)

var settingsForce bool

// settingFields maps the dotted names accepted by settings set to setters
var settingFields = map[string]func(s *models.Settings, value string) error{
	"ui.show_code_chips": func(s *models.Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		s.UI.ShowCodeChips = b
		return nil
	},
	"ui.value_width": func(s *models.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 10 {
			return fmt.Errorf("expected a width of at least 10, got %q", v)
		}
		s.UI.ValueWidth = n
		return nil
	},
	"ui.default_filter": func(s *models.Settings, v string) error {
		mode, err := search.ParseMode(v)
		if err != nil {
			return err
		}
		s.UI.DefaultFilter = mode.String()
		return nil
	},
	"ui.language": func(s *models.Settings, v string) error {
		s.UI.Language = v
		return nil
	},
	"editor.sort_lang_keys": func(s *models.Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		s.Editor.SortLangKeys = b
		return nil
	},
	"translate.from": func(s *models.Settings, v string) error {
		s.Translate.From = v
		return nil
	},
	"translate.to": func(s *models.Settings, v string) error {
		s.Translate.To = v
		return nil
	},
}

// NewSettingsCommand creates the settings command
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change the settings file",
		Long: `Manage settings.yaml. The file lives in the user config directory
unless LANGTABLE_SETTINGS points elsewhere. Missing fields use defaults.

Examples:
  # Print the effective settings
  langtable settings show

  # Write a settings file with the defaults
  langtable settings init

  # Hide § code chips in the editor
  langtable settings set ui.show_code_chips false

  # Suggest Korean translations by default
  langtable settings set translate.to ko`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsShow,
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), commandContext(cmd).SettingsPath())
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsInit,
	}
	initCmd.Flags().BoolVarP(&settingsForce, "force", "f", false, "Overwrite an existing settings file")

	set := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one setting",
		Long: `Change one setting and save the file.

Fields:
  ui.show_code_chips     - show § code markers in the editor (true/false)
  ui.value_width         - width of the source and target columns
  ui.default_filter      - all, translated or untranslated
  ui.language            - message language (en, ja)
  editor.sort_lang_keys  - sort keys when saving .lang files (true/false)
  translate.from         - suggestion source language, or auto
  translate.to           - suggestion target language`,
		Args: cobra.ExactArgs(2),
		RunE: runSettingsSet,
	}

	cmd.AddCommand(show, path, initCmd, set)
	return cmd
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	c := commandContext(cmd)
	settings, err := files.ReadSettings(c.SettingsPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return cli.OutputResults(out, format, settings)
	}
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprint(out, string(content))
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path := commandContext(cmd).SettingsPath()
	if !settingsForce && cli.ValidateFilePath(path) == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := files.WriteSettings(path, models.DefaultSettings()); err != nil {
		return err
	}
	cli.PrintSuccess("Wrote default settings to %s", path)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	field, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])
	setter, ok := settingFields[field]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}

	path := commandContext(cmd).SettingsPath()
	settings, err := files.ReadSettings(path)
	if err != nil {
		return err
	}
	if err := setter(settings, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if err := files.WriteSettings(path, settings); err != nil {
		return err
	}
	cli.PrintSuccess("Set %s to %s", field, value)
	return nil
}
