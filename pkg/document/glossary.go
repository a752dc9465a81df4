package document

import (
	"github.com/langtable/langtable/pkg/messages"
	"github.com/langtable/langtable/pkg/models"
)

// GlossaryStore is implemented by stores that also keep a glossary,
// such as project bundles
type GlossaryStore interface {
	Glossary() ([]models.GlossaryTerm, error)
	SetGlossary([]models.GlossaryTerm) error
}

func (d *Document) loadGlossary() error {
	gs, ok := d.store.(GlossaryStore)
	if !ok {
		return nil
	}
	terms, err := gs.Glossary()
	if err != nil {
		return err
	}
	d.glossary.Replace(terms)
	return nil
}

func (d *Document) saveGlossary(terms []models.GlossaryTerm) error {
	gs, ok := d.store.(GlossaryStore)
	if !ok {
		return nil
	}
	return gs.SetGlossary(terms)
}

// AddTerm appends a glossary term and persists the glossary when the store keeps one
func (d *Document) AddTerm(key, value string) error {
	before := d.glossary.List()
	if err := d.glossary.Add(key, value); err != nil {
		return d.fail(err)
	}
	if err := d.saveGlossary(d.glossary.List()); err != nil {
		d.glossary.Replace(before)
		return d.fail(err)
	}
	d.notify(Notice{Level: LevelSuccess, ID: messages.GlossaryAdded, Data: map[string]any{"Key": key}})
	return nil
}

// RemoveTerm deletes the glossary term at index i
func (d *Document) RemoveTerm(i int) error {
	before := d.glossary.List()
	if err := d.glossary.Delete(i); err != nil {
		return d.fail(err)
	}
	if err := d.saveGlossary(d.glossary.List()); err != nil {
		d.glossary.Replace(before)
		return d.fail(err)
	}
	d.notify(Notice{Level: LevelSuccess, ID: messages.GlossaryRemoved, Data: map[string]any{"Key": before[i].Key}})
	return nil
}
