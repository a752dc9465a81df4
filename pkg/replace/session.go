// Package replace implements guided (confirm each match) and bulk find/replace
// over the target strings of a table.
package replace

import (
	"fmt"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/search"
	"github.com/langtable/langtable/pkg/table"
)

// State is the position of a replace flow
type State int

const (
	StateIdle State = iota
	StateScanning
	StateStepping
	StateConfirming
	StateBulkConfirm
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateStepping:
		return "stepping"
	case StateConfirming:
		return "confirming"
	case StateBulkConfirm:
		return "bulk-confirm"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// WriteFunc persists a committed table. Returning an error aborts the commit.
type WriteFunc func(*table.Table) error

// Session is a guided replace over the candidates captured when it started.
// Candidates never change during the session; the cursor only moves through
// Skip, ReplaceCurrent and JumpTo.
type Session struct {
	search     string
	replace    string
	matcher    *search.Matcher
	candidates []models.Entry
	index      map[string]int
	cursor     int
	pending    map[string]string
	state      State
}

func validateTerms(op, searchTerm, replaceTerm string) error {
	if search.IsBlank(searchTerm) {
		return models.Validation(op, models.ErrEmptyQuery)
	}
	if search.IsBlank(replaceTerm) {
		return models.Validation(op, models.ErrEmptyReplacement)
	}
	return nil
}

// StartGuided captures every entry whose target contains searchTerm.
// The first candidate becomes current.
func StartGuided(t *table.Table, searchTerm, replaceTerm string) (*Session, error) {
	const op = "start guided replace"
	if err := validateTerms(op, searchTerm, replaceTerm); err != nil {
		return nil, err
	}

	s := &Session{
		search:  searchTerm,
		replace: replaceTerm,
		matcher: search.NewMatcher(searchTerm),
		index:   make(map[string]int),
		pending: make(map[string]string),
		state:   StateScanning,
	}
	for _, e := range t.Entries() {
		if s.matcher.Contains(e.Target) {
			s.index[e.Key] = len(s.candidates)
			s.candidates = append(s.candidates, e)
		}
	}
	if len(s.candidates) == 0 {
		return nil, models.Validation(op, fmt.Errorf("%w: %q", models.ErrNoMatches, searchTerm))
	}

	s.state = StateStepping
	return s, nil
}

// State returns the current state. A nil session is idle.
func (s *Session) State() State {
	if s == nil {
		return StateIdle
	}
	return s.state
}

// Active reports whether the session is stepping or awaiting confirmation
func (s *Session) Active() bool {
	st := s.State()
	return st == StateStepping || st == StateConfirming
}

func (s *Session) Search() string      { return s.search }
func (s *Session) Replacement() string { return s.replace }
func (s *Session) Cursor() int         { return s.cursor }
func (s *Session) Len() int            { return len(s.candidates) }

// Candidates returns the snapshot taken at start
func (s *Session) Candidates() []models.Entry {
	out := make([]models.Entry, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Current returns the candidate under the cursor with its original values
func (s *Session) Current() (models.Entry, bool) {
	if !s.Active() {
		return models.Entry{}, false
	}
	return s.candidates[s.cursor], true
}

// IsCandidate reports whether key was captured at start
func (s *Session) IsCandidate(key string) bool {
	if !s.Active() {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// PendingValue returns the staged value for key, if any
func (s *Session) PendingValue(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.pending[key]
	return v, ok
}

// Pending returns a copy of the staged edits
func (s *Session) Pending() map[string]string {
	out := make(map[string]string, len(s.pending))
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}

// PendingEdits lists staged edits in candidate order with their original values
func (s *Session) PendingEdits() []models.Edit {
	edits := make([]models.Edit, 0, len(s.pending))
	for _, c := range s.candidates {
		if after, ok := s.pending[c.Key]; ok {
			edits = append(edits, models.Edit{Key: c.Key, Before: c.Target, After: after})
		}
	}
	return edits
}

func (s *Session) requireActive(op string) error {
	if !s.Active() {
		return models.Validation(op, models.ErrNoSession)
	}
	return nil
}

// advance moves to the next candidate, or to Confirming after the last one
func (s *Session) advance() {
	if s.cursor < len(s.candidates)-1 {
		s.cursor++
		s.state = StateStepping
		return
	}
	s.state = StateConfirming
}

// Skip leaves the current candidate unchanged and moves on
func (s *Session) Skip() error {
	if err := s.requireActive("skip"); err != nil {
		return err
	}
	s.advance()
	return nil
}

// ReplaceCurrent stages the replacement of every occurrence in the current
// candidate's target, then moves on as Skip does.
func (s *Session) ReplaceCurrent() (models.Edit, error) {
	if err := s.requireActive("replace current"); err != nil {
		return models.Edit{}, err
	}
	c := s.candidates[s.cursor]
	edit := models.Edit{Key: c.Key, Before: c.Target, After: s.matcher.ReplaceAll(c.Target, s.replace)}
	s.pending[c.Key] = edit.After
	s.advance()
	return edit, nil
}

// JumpTo moves the cursor to key without touching staged edits.
// Jumping from Confirming resumes stepping.
func (s *Session) JumpTo(key string) error {
	if err := s.requireActive("jump to candidate"); err != nil {
		return err
	}
	i, ok := s.index[key]
	if !ok {
		return models.Validation("jump to candidate", fmt.Errorf("%w: %s", models.ErrNotCandidate, key))
	}
	s.cursor = i
	s.state = StateStepping
	return nil
}

// Cancel discards the candidates and staged edits. It returns how many edits were dropped.
func (s *Session) Cancel() int {
	if s == nil {
		return 0
	}
	dropped := len(s.pending)
	s.close()
	return dropped
}

func (s *Session) close() {
	s.candidates = nil
	s.index = map[string]int{}
	s.pending = map[string]string{}
	s.cursor = 0
	s.state = StateIdle
}

// Commit applies the staged edits to t and closes the session.
// With nothing staged it behaves like Cancel and returns t unchanged.
// If write fails the session stays open and t is returned untouched.
func (s *Session) Commit(t *table.Table, write WriteFunc) (*table.Table, int, error) {
	if err := s.requireActive("commit replace"); err != nil {
		return t, 0, err
	}
	if len(s.pending) == 0 {
		s.close()
		return t, 0, nil
	}

	next, err := t.ApplyEdits(s.pending)
	if err != nil {
		return t, 0, err
	}
	if write != nil {
		if err := write(next); err != nil {
			return t, 0, err
		}
	}

	n := len(s.pending)
	s.close()
	return next, n, nil
}
