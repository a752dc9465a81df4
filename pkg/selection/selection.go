// Package selection tracks which entry the editor shows and routes direct
// target edits, refusing them while a guided replace owns the selection.
package selection

import (
	"fmt"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/table"
)

// Selection is the entry shown in the editor
type Selection struct {
	Key    string
	Source string
	Target string
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return s.Key == "" || s.Key == models.NoSelection
}

func none() Selection {
	return Selection{Key: models.NoSelection}
}

// Session is the part of a guided replace the coordinator needs
type Session interface {
	Active() bool
	IsCandidate(key string) bool
	JumpTo(key string) error
}

// Backend receives direct target edits
type Backend interface {
	Has(key string) bool
	WriteTarget(key, value string) error
}

// Coordinator owns the current selection
type Coordinator struct {
	backend Backend
	session Session
	current Selection
}

// NewCoordinator starts with nothing selected
func NewCoordinator(backend Backend) *Coordinator {
	return &Coordinator{backend: backend, current: none()}
}

// Attach routes selections through a guided replace session
func (c *Coordinator) Attach(s Session) {
	c.session = s
}

// Detach forgets the session
func (c *Coordinator) Detach() {
	c.session = nil
}

func (c *Coordinator) replaceActive() bool {
	return c.session != nil && c.session.Active()
}

// Current returns the selection
func (c *Coordinator) Current() Selection {
	return c.current
}

// Select shows the entry for key. When a guided replace is active and key is
// one of its candidates the session cursor follows.
func (c *Coordinator) Select(key, source, target string) error {
	if !c.backend.Has(key) {
		return models.Validation("select", fmt.Errorf("%w: %s", models.ErrKeyNotFound, key))
	}
	if c.replaceActive() && c.session.IsCandidate(key) {
		if err := c.session.JumpTo(key); err != nil {
			return err
		}
	}
	c.current = Selection{Key: key, Source: source, Target: target}
	return nil
}

// Show displays an entry without touching the session
func (c *Coordinator) Show(e models.Entry) {
	c.current = Selection{Key: e.Key, Source: e.Source, Target: e.Target}
}

// ShowTarget updates the displayed target, for a staged value the table does not hold yet
func (c *Coordinator) ShowTarget(value string) {
	if !c.current.Empty() {
		c.current.Target = value
	}
}

// EditTarget writes value to the selected entry. Direct edits are refused
// while a guided replace is in progress.
func (c *Coordinator) EditTarget(value string) error {
	const op = "edit target"
	if c.replaceActive() {
		return models.Validation(op, models.ErrReplaceActive)
	}
	if c.current.Empty() {
		return models.Validation(op, models.ErrNoSelection)
	}
	if err := c.backend.WriteTarget(c.current.Key, value); err != nil {
		return err
	}
	c.current.Target = value
	return nil
}

// Clear resets to the "none" selection
func (c *Coordinator) Clear() {
	c.current = none()
}

// Revalidate refreshes the selection against a reloaded table and clears it
// if the key is gone. It reports whether the selection survived.
func (c *Coordinator) Revalidate(t *table.Table) bool {
	if c.current.Empty() {
		return false
	}
	e, ok := t.Get(c.current.Key)
	if !ok {
		c.Clear()
		return false
	}
	c.Show(e)
	return true
}
