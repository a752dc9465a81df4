package replace

import "fmt"

// Command is a user action on a guided replace session
type Command interface {
	command()
}

// Skip leaves the current candidate as is
type Skip struct{}

// ReplaceOne stages the replacement for the current candidate
type ReplaceOne struct{}

// JumpTo moves to another candidate
type JumpTo struct {
	Key string
}

// Cancel discards the session
type Cancel struct{}

func (Skip) command()       {}
func (ReplaceOne) command() {}
func (JumpTo) command()     {}
func (Cancel) command()     {}

// Outcome describes what a dispatched command did
type Outcome struct {
	State    State
	Replaced bool
	Value    string // staged value when Replaced
	Dropped  int    // edits discarded by Cancel
}

// Dispatch applies cmd to the session
func (s *Session) Dispatch(cmd Command) (Outcome, error) {
	switch c := cmd.(type) {
	case Skip:
		err := s.Skip()
		return Outcome{State: s.State()}, err
	case ReplaceOne:
		edit, err := s.ReplaceCurrent()
		if err != nil {
			return Outcome{State: s.State()}, err
		}
		return Outcome{State: s.State(), Replaced: true, Value: edit.After}, nil
	case JumpTo:
		err := s.JumpTo(c.Key)
		return Outcome{State: s.State()}, err
	case Cancel:
		dropped := s.Cancel()
		return Outcome{State: s.State(), Dropped: dropped}, nil
	default:
		return Outcome{State: s.State()}, fmt.Errorf("unknown replace command %T", cmd)
	}
}
