// Package glossary keeps the agreed translations of recurring terms.
package glossary

import (
	"fmt"
	"strings"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
)

// Glossary is an ordered list of terms. Duplicate keys are allowed.
type Glossary struct {
	terms []models.GlossaryTerm
}

// New creates a glossary holding terms
func New(terms ...models.GlossaryTerm) *Glossary {
	g := &Glossary{}
	g.Replace(terms)
	return g
}

// List returns a copy of all terms
func (g *Glossary) List() []models.GlossaryTerm {
	if g == nil {
		return nil
	}
	out := make([]models.GlossaryTerm, len(g.terms))
	copy(out, g.terms)
	return out
}

// Len returns the number of terms
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.terms)
}

func validTerm(op string, term models.GlossaryTerm) (models.GlossaryTerm, error) {
	term.Key = strings.TrimSpace(term.Key)
	term.Value = strings.TrimSpace(term.Value)
	if term.Key == "" || term.Value == "" {
		return term, models.Validation(op, models.ErrEmptyTerm)
	}
	return term, nil
}

func (g *Glossary) checkIndex(op string, i int) error {
	if i < 0 || i >= len(g.terms) {
		return models.Validation(op, fmt.Errorf("%w: %d", models.ErrTermIndex, i))
	}
	return nil
}

// Add appends a term. Both sides must be non-blank.
func (g *Glossary) Add(key, value string) error {
	term, err := validTerm("add glossary term", models.GlossaryTerm{Key: key, Value: value})
	if err != nil {
		return err
	}
	g.terms = append(g.terms, term)
	return nil
}

// Update replaces the term at index i
func (g *Glossary) Update(i int, term models.GlossaryTerm) error {
	const op = "update glossary term"
	if err := g.checkIndex(op, i); err != nil {
		return err
	}
	term, err := validTerm(op, term)
	if err != nil {
		return err
	}
	g.terms[i] = term
	return nil
}

// Delete removes the term at index i
func (g *Glossary) Delete(i int) error {
	if err := g.checkIndex("delete glossary term", i); err != nil {
		return err
	}
	g.terms = append(g.terms[:i:i], g.terms[i+1:]...)
	return nil
}

// Replace swaps the whole list, e.g. after loading a project
func (g *Glossary) Replace(terms []models.GlossaryTerm) {
	g.terms = make([]models.GlossaryTerm, len(terms))
	copy(g.terms, terms)
}

// Filter returns the terms whose key or value contains query, ignoring case.
// A blank query returns everything.
func (g *Glossary) Filter(query string) []models.GlossaryTerm {
	m := search.NewMatcher(query)
	if m.Blank() {
		return g.List()
	}
	var out []models.GlossaryTerm
	for _, t := range g.List() {
		if m.Contains(t.Key) || m.Contains(t.Value) {
			out = append(out, t)
		}
	}
	return out
}

// Hints returns the terms whose key appears in text, in glossary order
func (g *Glossary) Hints(text string) []models.GlossaryTerm {
	var out []models.GlossaryTerm
	for _, t := range g.List() {
		if search.NewMatcher(t.Key).Contains(text) {
			out = append(out, t)
		}
	}
	return out
}
