package document

import (
	"github.com/langtable/langtable/pkg/messages"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/replace"
)

// StartGuided begins a guided replace and selects the first candidate
func (d *Document) StartGuided(searchTerm, replaceTerm string) error {
	if d.session.Active() {
		return d.fail(models.Validation("start guided replace", models.ErrReplaceActive))
	}
	s, err := replace.StartGuided(d.table, searchTerm, replaceTerm)
	if err != nil {
		return d.fail(err)
	}

	d.bulk.Discard()
	d.bulk = nil
	d.session = s
	d.selection.Attach(s)
	d.showCurrent()

	d.logger.Info().Str("search", searchTerm).Int("candidates", s.Len()).Msg("guided replace started")
	d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceStarted, Data: map[string]any{"Count": s.Len(), "Search": searchTerm}})
	return nil
}

// showCurrent puts the session's current candidate in the editor with
// its stored values. Staged edits are not shown.
func (d *Document) showCurrent() {
	e, ok := d.session.Current()
	if !ok {
		return
	}
	d.selection.Show(e)
}

// Dispatch applies a replace command to the guided session
func (d *Document) Dispatch(cmd replace.Command) (replace.Outcome, error) {
	if !d.session.Active() {
		return replace.Outcome{}, d.fail(models.Validation("replace", models.ErrNoSession))
	}
	if _, ok := cmd.(replace.Cancel); ok {
		dropped := d.Cancel()
		return replace.Outcome{State: replace.StateIdle, Dropped: dropped}, nil
	}

	before, _ := d.session.Current()
	out, err := d.session.Dispatch(cmd)
	if err != nil {
		return out, d.fail(err)
	}

	switch cmd.(type) {
	case replace.ReplaceOne:
		d.logger.Debug().Str("key", before.Key).Msg("replacement staged")
		d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceStaged, Data: map[string]any{"Key": before.Key}})
	case replace.Skip:
		d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceSkipped, Data: map[string]any{"Key": before.Key}})
	}
	if out.State == replace.StateConfirming {
		d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceReview, Data: map[string]any{"Count": len(d.session.Pending())}})
	}
	d.showCurrent()

	// the last candidate stays in view after its replacement, so show the staged value
	if _, ok := cmd.(replace.ReplaceOne); ok && out.State == replace.StateConfirming {
		if cur, ok := d.session.Current(); ok && cur.Key == before.Key {
			d.selection.ShowTarget(out.Value)
		}
	}
	return out, nil
}

// Commit writes the staged replacements. If the store refuses the write the
// session stays open and nothing changes.
func (d *Document) Commit() (int, error) {
	if !d.session.Active() {
		return 0, d.fail(models.Validation("commit replace", models.ErrNoSession))
	}
	next, n, err := d.session.Commit(d.table, d.persist)
	if err != nil {
		d.logger.Error().Err(err).Msg("replace commit failed")
		return 0, d.fail(err)
	}

	d.selection.Detach()
	d.session = nil
	d.setTable(next)
	d.selection.Revalidate(d.table)

	if n == 0 {
		d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceNothing})
		return 0, nil
	}
	d.logger.Info().Int("changed", n).Msg("guided replace committed")
	d.notify(Notice{Level: LevelSuccess, ID: messages.ReplaceCommitted, Data: map[string]any{"Count": n}})
	return n, nil
}

// Cancel drops the guided replace and its staged edits
func (d *Document) Cancel() int {
	if !d.session.Active() {
		return 0
	}
	dropped := d.session.Cancel()
	d.selection.Detach()
	d.session = nil
	d.selection.Revalidate(d.table)

	d.logger.Info().Int("dropped", dropped).Msg("guided replace cancelled")
	d.notify(Notice{Level: LevelInfo, ID: messages.ReplaceCancelled, Data: map[string]any{"Count": dropped}})
	return dropped
}

// PlanBulk computes a bulk replace and holds it for confirmation.
// A plan that changes nothing is not held.
func (d *Document) PlanBulk(searchTerm, replaceTerm string) (*replace.BulkPlan, error) {
	if d.session.Active() {
		return nil, d.fail(models.Validation("plan bulk replace", models.ErrReplaceActive))
	}
	plan, err := replace.PlanBulk(d.table, searchTerm, replaceTerm)
	if err != nil {
		return nil, d.fail(err)
	}
	if plan.Len() == 0 {
		d.bulk = nil
		d.notify(Notice{Level: LevelWarning, ID: messages.BulkNothing})
		return plan, nil
	}

	d.bulk = plan
	d.notify(Notice{Level: LevelInfo, ID: messages.BulkPlanned, Data: map[string]any{
		"Count": plan.Len(), "Search": searchTerm, "Replace": replaceTerm,
	}})
	return plan, nil
}

// ConfirmBulk applies the held bulk plan
func (d *Document) ConfirmBulk() (int, error) {
	if d.Bulk() == nil {
		return 0, d.fail(models.Validation("apply bulk replace", models.ErrNoSession))
	}
	next, n, err := d.bulk.Apply(d.table, d.persist)
	if err != nil {
		d.logger.Error().Err(err).Msg("bulk replace failed")
		return 0, d.fail(err)
	}

	d.bulk = nil
	d.setTable(next)
	d.selection.Revalidate(d.table)

	d.logger.Info().Int("changed", n).Msg("bulk replace applied")
	d.notify(Notice{Level: LevelSuccess, ID: messages.BulkApplied, Data: map[string]any{"Count": n}})
	return n, nil
}

// DiscardBulk drops the held bulk plan
func (d *Document) DiscardBulk() {
	if d.Bulk() == nil {
		return
	}
	d.bulk.Discard()
	d.bulk = nil
	d.notify(Notice{Level: LevelInfo, ID: messages.BulkDiscarded})
}

// BulkReplace plans and applies a bulk replace in one step
func (d *Document) BulkReplace(searchTerm, replaceTerm string) (int, error) {
	plan, err := d.PlanBulk(searchTerm, replaceTerm)
	if err != nil {
		return 0, err
	}
	if plan.Len() == 0 {
		return 0, nil
	}
	return d.ConfirmBulk()
}
