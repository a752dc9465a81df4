package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/internal/config"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/tui"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <source> <target> | edit <project.mctp>",
		Short: "Open the table editor",
		Long: `Open the interactive editor on a pair of tables or on a project.

The target file is created on the first save when it does not exist yet.
While the editor runs, log output goes to a file instead of the terminal.

Examples:
  # Edit a JSON table pair
  langtable edit en_us.json ja_jp.json

  # Edit a .lang pair
  langtable edit en_US.lang ja_JP.lang

  # Edit a project bundle
  langtable edit mod.mctp`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runEdit,
	}
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	c := commandContext(cmd)

	// The alternate screen owns the terminal; log to a file instead
	cfg := *c.Config
	if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultLogFile()
	}
	closer, err := config.SetupLogging(&cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	status := tui.NewStatusManager(c.Catalog())
	doc, err := c.OpenDocument(args, document.WithNotifier(status))
	if err != nil {
		return err
	}

	settings := c.LoadSettingsWithDefault()
	from, to := c.LanguagePair()
	app := tui.NewApp(doc, status, tui.Options{
		Title:      editTitle(args),
		Catalog:    c.Catalog(),
		Translator: c.Translator(),
		Editor:     cli.NewEditorLauncher(),
		From:       from,
		To:         to,
		ShowChips:  settings.UI.ShowCodeChips,
		ValueWidth: settings.UI.ValueWidth,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func editTitle(args []string) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = filepath.Base(a)
	}
	return strings.Join(names, " → ")
}
