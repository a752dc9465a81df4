package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/langtable/langtable/internal/config"
	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/files"
	"github.com/langtable/langtable/pkg/messages"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/translate"
)

// CommandContext carries the configuration shared by all commands
type CommandContext struct {
	Config   *config.Config
	Settings *models.Settings
	catalog  *messages.Catalog
}

// NewCommandContext creates a new command context
func NewCommandContext(cfg *config.Config) *CommandContext {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &CommandContext{Config: cfg}
}

// SettingsPath is the settings file in use
func (c *CommandContext) SettingsPath() string {
	if c.Config.SettingsPath != "" {
		return c.Config.SettingsPath
	}
	return files.DefaultSettingsPath()
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings(c.SettingsPath())
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// Catalog returns the message catalog for the configured UI language.
// LANGTABLE_UI_LANG wins over the settings file.
func (c *CommandContext) Catalog() *messages.Catalog {
	if c.catalog != nil {
		return c.catalog
	}
	lang := c.Config.UILang
	if lang == "" {
		lang = c.LoadSettingsWithDefault().UI.Language
	}
	catalog, err := messages.New(lang)
	if err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("falling back to English messages")
		catalog, err = messages.New("en")
		if err != nil {
			panic(err)
		}
	}
	c.catalog = catalog
	return catalog
}

// Translator builds a client for the configured translation endpoint
func (c *CommandContext) Translator() *translate.Client {
	return translate.NewClient(c.Config.TranslateEndpoint, c.Config.TranslateTimeout)
}

// LanguagePair returns the suggestion languages. Settings override the
// environment only where they are set.
func (c *CommandContext) LanguagePair() (from, to string) {
	from, to = c.Config.SourceLang, c.Config.TargetLang
	s := c.LoadSettingsWithDefault()
	if s.Translate.From != "" {
		from = s.Translate.From
	}
	if s.Translate.To != "" {
		to = s.Translate.To
	}
	if from == "" {
		from = translate.AutoDetect
	}
	return from, to
}

// SaveOptions derives table save options from the settings
func (c *CommandContext) SaveOptions() files.SaveOptions {
	return files.SaveOptions{SortLangKeys: c.LoadSettingsWithDefault().Editor.SortLangKeys}
}

// OpenStore picks a store for the command arguments: one project bundle,
// or a source file and a target file.
func (c *CommandContext) OpenStore(args []string) (document.Store, error) {
	switch len(args) {
	case 1:
		if !strings.HasSuffix(strings.ToLower(args[0]), files.ProjectExtension) {
			return nil, fmt.Errorf("expected a %s project or a source and a target file", files.ProjectExtension)
		}
		return files.OpenProjectStore(args[0])
	case 2:
		if err := ValidateTablePath(args[0], true); err != nil {
			return nil, err
		}
		if err := ValidateTablePath(args[1], false); err != nil {
			return nil, err
		}
		return files.NewFileStore(args[0], args[1], c.SaveOptions()), nil
	default:
		return nil, fmt.Errorf("expected a %s project or a source and a target file", files.ProjectExtension)
	}
}

// OpenDocument opens the store for args and loads it into a document
func (c *CommandContext) OpenDocument(args []string, opts ...document.Option) (*document.Document, error) {
	store, err := c.OpenStore(args)
	if err != nil {
		return nil, err
	}

	mode, err := search.ParseMode(c.LoadSettingsWithDefault().UI.DefaultFilter)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring default filter setting")
	}
	opts = append([]document.Option{
		document.WithMode(mode),
		document.WithLogger(log.Logger.With().Str("component", "document").Logger()),
	}, opts...)

	doc := document.New(store, opts...)
	if err := doc.Reload(); err != nil {
		return nil, err
	}
	return doc, nil
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// Command builds the editor command for path without running it
func (e *EditorLauncher) Command(path string) *exec.Cmd {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	return exec.Command(parts[0], append(parts[1:], path)...)
}

// WriteTempFile stores content in a new temp file for editing
func (e *EditorLauncher) WriteTempFile(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	return tmpFile.Name(), nil
}

// ReadTempFile returns the edited content and removes the file.
// A single trailing newline added by the editor is dropped.
func (e *EditorLauncher) ReadTempFile(path string) (string, error) {
	defer os.Remove(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read temp file: %w", err)
	}
	s := strings.TrimSuffix(string(content), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
