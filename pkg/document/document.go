// Package document ties the table, search, replace and selection together
// behind one controller that the TUI and the CLI drive.
package document

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/langtable/langtable/pkg/glossary"
	"github.com/langtable/langtable/pkg/messages"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/replace"
	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/selection"
	"github.com/langtable/langtable/pkg/table"
)

// Store loads the source and target tables and persists the target
type Store interface {
	SourceMap() (*models.OrderedMap, error)
	TargetMap() (*models.OrderedMap, error)
	SetTargetMap(*models.OrderedMap) error
}

// Document is the editing state of one source/target pair
type Document struct {
	store     Store
	table     *table.Table
	query     string
	mode      search.Mode
	visible   []models.Entry
	session   *replace.Session
	bulk      *replace.BulkPlan
	selection *selection.Coordinator
	glossary  *glossary.Glossary
	notifier  Notifier
	logger    zerolog.Logger
}

// Option configures a Document
type Option func(*Document)

func WithLogger(l zerolog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

func WithNotifier(n Notifier) Option {
	return func(d *Document) { d.notifier = n }
}

func WithGlossary(g *glossary.Glossary) Option {
	return func(d *Document) { d.glossary = g }
}

// WithMode sets the initial filter mode
func WithMode(m search.Mode) Option {
	return func(d *Document) { d.mode = m }
}

// New creates an empty document over store. Call Reload to load the tables.
func New(store Store, opts ...Option) *Document {
	d := &Document{
		store:    store,
		table:    table.Build(nil, nil),
		glossary: glossary.New(),
		notifier: discard{},
		logger:   zerolog.Nop(),
	}
	d.selection = selection.NewCoordinator(backend{d})
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// backend lets the selection coordinator write through the document
type backend struct{ d *Document }

func (b backend) Has(key string) bool { return b.d.table.Has(key) }

func (b backend) WriteTarget(key, value string) error {
	next, err := b.d.table.ApplyEdit(key, value)
	if err != nil {
		return err
	}
	if err := b.d.persist(next); err != nil {
		return err
	}
	b.d.setTable(next)
	return nil
}

func (d *Document) notify(n Notice) {
	d.notifier.Notify(n)
}

func (d *Document) fail(err error) error {
	d.notify(errorNotice(err))
	return err
}

func (d *Document) persist(next *table.Table) error {
	return d.store.SetTargetMap(next.TargetMap())
}

func (d *Document) setTable(t *table.Table) {
	d.table = t
	d.refresh()
}

func (d *Document) refresh() {
	d.visible = search.FilterTable(d.table, d.query, d.mode)
}

// Reload reads both tables from the store. Any replace in progress is cancelled.
func (d *Document) Reload() error {
	source, err := d.store.SourceMap()
	if err != nil {
		return d.fail(err)
	}
	target, err := d.store.TargetMap()
	if err != nil {
		return d.fail(err)
	}
	if err := d.loadGlossary(); err != nil {
		return d.fail(err)
	}

	if d.session.Active() {
		dropped := d.session.Cancel()
		d.selection.Detach()
		d.logger.Info().Int("dropped", dropped).Msg("replace cancelled by reload")
		d.notify(Notice{Level: LevelWarning, ID: messages.ReplaceReloadCancelled})
	}
	d.session = nil
	d.bulk.Discard()
	d.bulk = nil

	d.setTable(table.Build(source, target))
	if !d.selection.Current().Empty() && !d.selection.Revalidate(d.table) {
		d.notify(Notice{Level: LevelWarning, ID: messages.SelectionCleared})
	}

	c := d.table.Counts()
	d.logger.Info().Int("total", c.Total).Int("untranslated", c.Untranslated).Msg("tables loaded")
	d.notify(Notice{Level: LevelInfo, ID: messages.Loaded, Data: map[string]any{"Total": c.Total, "Untranslated": c.Untranslated}})
	return nil
}

// Table returns the current snapshot
func (d *Document) Table() *table.Table {
	return d.table
}

// Visible returns the entries passing the current filter, in table order
func (d *Document) Visible() []models.Entry {
	out := make([]models.Entry, len(d.visible))
	copy(out, d.visible)
	return out
}

func (d *Document) Query() string     { return d.query }
func (d *Document) Mode() search.Mode { return d.mode }

// SetQuery changes the free-text filter
func (d *Document) SetQuery(q string) {
	d.query = q
	d.refresh()
}

// SetMode changes the status filter
func (d *Document) SetMode(m search.Mode) {
	d.mode = m
	d.refresh()
}

// CycleMode advances the status filter and returns the new mode
func (d *Document) CycleMode() search.Mode {
	d.SetMode(d.mode.Next())
	return d.mode
}

// Counts summarises the whole table, ignoring the filter
func (d *Document) Counts() table.Counts {
	return d.table.Counts()
}

// Session returns the guided replace in progress, or nil
func (d *Document) Session() *replace.Session {
	if !d.session.Active() {
		return nil
	}
	return d.session
}

// Bulk returns the bulk plan awaiting confirmation, or nil
func (d *Document) Bulk() *replace.BulkPlan {
	if d.bulk.State() != replace.StateBulkConfirm {
		return nil
	}
	return d.bulk
}

// Glossary returns the document's glossary
func (d *Document) Glossary() *glossary.Glossary {
	return d.glossary
}

// Selection returns the entry shown in the editor
func (d *Document) Selection() selection.Selection {
	return d.selection.Current()
}

// Hints returns the glossary terms found in the selected source string
func (d *Document) Hints() []models.GlossaryTerm {
	sel := d.selection.Current()
	if sel.Empty() {
		return nil
	}
	return d.glossary.Hints(sel.Source)
}

// Select shows key in the editor. During a guided replace, selecting a
// candidate moves the replace cursor to it.
func (d *Document) Select(key string) error {
	e, ok := d.table.Get(key)
	if !ok {
		return d.fail(models.Validation("select", fmt.Errorf("%w: %s", models.ErrKeyNotFound, key)))
	}
	if err := d.selection.Select(e.Key, e.Source, e.Target); err != nil {
		return d.fail(err)
	}
	return nil
}

// EditTarget writes value to the selected entry and persists it
func (d *Document) EditTarget(value string) error {
	key := d.selection.Current().Key
	if err := d.selection.EditTarget(value); err != nil {
		return d.fail(err)
	}
	d.logger.Debug().Str("key", key).Msg("target edited")
	d.notify(Notice{Level: LevelSuccess, ID: messages.EditSaved, Data: map[string]any{"Key": key}})
	return nil
}

// ApplySuggestion writes a translation suggestion to the selected entry
func (d *Document) ApplySuggestion(text string) error {
	key := d.selection.Current().Key
	if err := d.selection.EditTarget(text); err != nil {
		return d.fail(err)
	}
	d.logger.Info().Str("key", key).Msg("suggestion applied")
	d.notify(Notice{Level: LevelSuccess, ID: messages.SuggestionApplied, Data: map[string]any{"Key": key}})
	return nil
}
