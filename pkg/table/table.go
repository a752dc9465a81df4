// Package table builds the key/source/target view over a pair of string tables.
package table

import (
	"fmt"
	"strings"

	"github.com/langtable/langtable/pkg/models"
)

// Table is an immutable snapshot of entries in source-key order.
// Updates return a new Table; the receiver is never modified.
type Table struct {
	entries []models.Entry
	index   map[string]int
	target  *models.OrderedMap
}

// Counts summarises translation progress
type Counts struct {
	Total        int `json:"total" yaml:"total"`
	Translated   int `json:"translated" yaml:"translated"`
	Untranslated int `json:"untranslated" yaml:"untranslated"`
}

// Build derives a table from the source and target maps.
// There is one entry per source key; missing targets become "".
func Build(source, target *models.OrderedMap) *Table {
	t := &Table{
		entries: make([]models.Entry, 0, source.Len()),
		index:   make(map[string]int, source.Len()),
		target:  target.Clone(),
	}
	for _, key := range source.Keys() {
		src, _ := source.Get(key)
		tgt, _ := target.Get(key)
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, models.Entry{Key: key, Source: src, Target: tgt})
	}
	return t
}

// IsUntranslated reports whether the target is blank or equal to the source, ignoring surrounding whitespace
func IsUntranslated(e models.Entry) bool {
	target := strings.TrimSpace(e.Target)
	return target == "" || target == strings.TrimSpace(e.Source)
}

// Len returns the number of entries
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in order
func (t *Table) Entries() []models.Entry {
	if t == nil {
		return nil
	}
	out := make([]models.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Get returns the entry for key
func (t *Table) Get(key string) (models.Entry, bool) {
	if t == nil {
		return models.Entry{}, false
	}
	i, ok := t.index[key]
	if !ok {
		return models.Entry{}, false
	}
	return t.entries[i], true
}

// Has reports whether key is part of the table
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// ApplyEdit returns a copy of the table with key's target replaced
func (t *Table) ApplyEdit(key, value string) (*Table, error) {
	return t.ApplyEdits(map[string]string{key: value})
}

// ApplyEdits applies a batch of target changes. Every key is checked
// before anything changes, so an unknown key leaves no partial update.
func (t *Table) ApplyEdits(edits map[string]string) (*Table, error) {
	for key := range edits {
		if !t.Has(key) {
			return t, models.Validation("apply edit", fmt.Errorf("%w: %s", models.ErrKeyNotFound, key))
		}
	}
	if len(edits) == 0 {
		return t, nil
	}

	next := &Table{
		entries: t.Entries(),
		index:   t.index,
		target:  t.target.Clone(),
	}
	// Walk entries rather than the map so new target keys land in source order
	for i, e := range next.entries {
		value, ok := edits[e.Key]
		if !ok {
			continue
		}
		next.entries[i].Target = value
		next.target.Set(e.Key, value)
	}
	return next, nil
}

// Counts returns total, translated and untranslated counts
func (t *Table) Counts() Counts {
	var c Counts
	if t == nil {
		return c
	}
	c.Total = len(t.entries)
	for _, e := range t.entries {
		if IsUntranslated(e) {
			c.Untranslated++
		}
	}
	c.Translated = c.Total - c.Untranslated
	return c
}

// TargetMap returns the target table to persist: the loaded target keys in
// their original order, followed by keys first written by edits.
// Keys that only exist in the target file are kept.
func (t *Table) TargetMap() *models.OrderedMap {
	if t == nil {
		return models.NewOrderedMap()
	}
	return t.target.Clone()
}
