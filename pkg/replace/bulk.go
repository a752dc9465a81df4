package replace

import (
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/table"
)

// BulkPlan is a computed bulk replace awaiting confirmation
type BulkPlan struct {
	search  string
	replace string
	changes []models.Edit
	state   State
}

// PlanBulk computes every change a bulk replace would make.
// Entries whose value would not change are left out.
func PlanBulk(t *table.Table, searchTerm, replaceTerm string) (*BulkPlan, error) {
	if err := validateTerms("plan bulk replace", searchTerm, replaceTerm); err != nil {
		return nil, err
	}

	m := search.NewMatcher(searchTerm)
	p := &BulkPlan{search: searchTerm, replace: replaceTerm, state: StateBulkConfirm}
	for _, e := range t.Entries() {
		if !m.Contains(e.Target) {
			continue
		}
		after := m.ReplaceAll(e.Target, replaceTerm)
		if after == e.Target {
			continue
		}
		p.changes = append(p.changes, models.Edit{Key: e.Key, Before: e.Target, After: after})
	}
	return p, nil
}

func (p *BulkPlan) Search() string      { return p.search }
func (p *BulkPlan) Replacement() string { return p.replace }

// State returns StateBulkConfirm until the plan is applied or discarded
func (p *BulkPlan) State() State {
	if p == nil {
		return StateIdle
	}
	return p.state
}

// Changes lists the planned edits in table order
func (p *BulkPlan) Changes() []models.Edit {
	out := make([]models.Edit, len(p.changes))
	copy(out, p.changes)
	return out
}

// Len returns the number of entries that would change
func (p *BulkPlan) Len() int {
	return len(p.changes)
}

// Apply writes every planned change in one batch
func (p *BulkPlan) Apply(t *table.Table, write WriteFunc) (*table.Table, int, error) {
	if p.State() != StateBulkConfirm {
		return t, 0, models.Validation("apply bulk replace", models.ErrNoSession)
	}
	if len(p.changes) == 0 {
		p.state = StateIdle
		return t, 0, nil
	}

	edits := make(map[string]string, len(p.changes))
	for _, c := range p.changes {
		edits[c.Key] = c.After
	}
	next, err := t.ApplyEdits(edits)
	if err != nil {
		return t, 0, err
	}
	if write != nil {
		if err := write(next); err != nil {
			return t, 0, err
		}
	}

	p.state = StateIdle
	return next, len(p.changes), nil
}

// Discard drops the plan without writing anything
func (p *BulkPlan) Discard() {
	if p != nil {
		p.state = StateIdle
	}
}

// BulkReplace replaces every occurrence of searchTerm in every target and
// returns the new table with the number of entries that changed.
func BulkReplace(t *table.Table, searchTerm, replaceTerm string) (*table.Table, int, error) {
	plan, err := PlanBulk(t, searchTerm, replaceTerm)
	if err != nil {
		return t, 0, err
	}
	return plan.Apply(t, nil)
}
