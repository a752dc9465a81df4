// Package messages localizes the notices shown to the user.
package messages

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/langtable/langtable/pkg/models"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message IDs
const (
	Loaded           = "loaded"
	Saved            = "saved"
	EditSaved        = "edit_saved"
	SelectionCleared = "selection_cleared"

	ReplaceStarted         = "replace_started"
	ReplaceStaged          = "replace_staged"
	ReplaceSkipped         = "replace_skipped"
	ReplaceReview          = "replace_review"
	ReplaceCommitted       = "replace_committed"
	ReplaceCancelled       = "replace_cancelled"
	ReplaceNothing         = "replace_nothing"
	ReplaceReloadCancelled = "replace_reload_cancelled"

	BulkPlanned   = "bulk_planned"
	BulkApplied   = "bulk_applied"
	BulkDiscarded = "bulk_discarded"
	BulkNothing   = "bulk_nothing"

	SuggestionReady   = "suggestion_ready"
	SuggestionApplied = "suggestion_applied"
	Translating       = "translating"
	Copied            = "copied"

	GlossaryAdded   = "glossary_added"
	GlossaryRemoved = "glossary_removed"

	ErrorIO       = "error_io"
	ErrorExternal = "error_external"
	ErrorUnknown  = "error_unknown"
)

var errorIDs = []struct {
	err error
	id  string
}{
	{models.ErrEmptyQuery, "error_empty_query"},
	{models.ErrEmptyReplacement, "error_empty_replacement"},
	{models.ErrNoMatches, "error_no_matches"},
	{models.ErrKeyNotFound, "error_key_not_found"},
	{models.ErrReplaceActive, "error_replace_active"},
	{models.ErrNoSession, "error_no_session"},
	{models.ErrNotCandidate, "error_not_candidate"},
	{models.ErrNoSelection, "error_no_selection"},
	{models.ErrEmptyTerm, "error_empty_term"},
	{models.ErrTermIndex, "error_term_index"},
	{models.ErrEmptyText, "error_empty_text"},
	{models.ErrUnsupportedFormat, "error_unsupported_format"},
	{models.ErrInvalidProject, "error_invalid_project"},
	{models.ErrNoSource, "error_no_source"},
}

// ErrorID maps err to the message describing it
func ErrorID(err error) string {
	for _, e := range errorIDs {
		if errors.Is(err, e.err) {
			return e.id
		}
	}
	switch models.KindOf(err) {
	case models.KindIO:
		return ErrorIO
	case models.KindExternalService:
		return ErrorExternal
	default:
		return ErrorUnknown
	}
}

// ErrorData returns the template data for err. Detail holds whatever
// follows the sentinel text, or the whole message when there is none.
func ErrorData(err error) map[string]any {
	msg := err.Error()
	for _, e := range errorIDs {
		if !errors.Is(err, e.err) {
			continue
		}
		marker := e.err.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			msg = msg[i+len(marker):]
		}
		break
	}
	return map[string]any{"Detail": msg}
}

// Supported lists the bundled languages
var Supported = []string{"en", "ja"}

// NewBundle loads the embedded catalogs
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, lang := range Supported {
		path := fmt.Sprintf("locales/active.%s.toml", lang)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return bundle, nil
}

// Catalog renders messages in one language
type Catalog struct {
	lang      string
	localizer *i18n.Localizer
}

// New returns a catalog for lang, falling back to English for unknown languages
func New(lang string) (*Catalog, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}
	return &Catalog{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang, language.English.String()),
	}, nil
}

// Language returns the requested language
func (c *Catalog) Language() string {
	return c.lang
}

// Text renders message id with data. Unknown IDs render as the ID itself.
func (c *Catalog) Text(id string, data map[string]any) string {
	out, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return out
}

// Error renders err
func (c *Catalog) Error(err error) string {
	if err == nil {
		return ""
	}
	return c.Text(ErrorID(err), ErrorData(err))
}
