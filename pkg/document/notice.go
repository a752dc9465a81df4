package document

import "github.com/langtable/langtable/pkg/messages"

// Level is the severity of a notice
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a user-facing outcome of a document operation.
// ID is a message ID from the messages package.
type Notice struct {
	Level Level
	ID    string
	Data  map[string]any
	Err   error
}

// Text renders the notice with catalog
func (n Notice) Text(c *messages.Catalog) string {
	if n.Err != nil {
		return c.Error(n.Err)
	}
	return c.Text(n.ID, n.Data)
}

// Notifier receives notices
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}

func errorNotice(err error) Notice {
	return Notice{Level: LevelError, ID: messages.ErrorID(err), Data: messages.ErrorData(err), Err: err}
}
