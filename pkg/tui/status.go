package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/messages"
)

// StatusMsg shows a temporary status line
type StatusMsg string

// ClearStatusMsg clears the temporary status line
type ClearStatusMsg struct {
	seq int
}

// StatusFeedback is the status line currently shown
type StatusFeedback struct {
	Message string
	Level   document.Level
}

// StatusManager turns document notices into a timed status line
type StatusManager struct {
	Current         *StatusFeedback
	DefaultDuration time.Duration
	ErrorDuration   time.Duration
	catalog         *messages.Catalog
	queue           []document.Notice
	seq             int
}

// NewStatusManager creates a new status manager
func NewStatusManager(catalog *messages.Catalog) *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		ErrorDuration:   6 * time.Second,
		catalog:         catalog,
	}
}

// Notify queues a notice; Flush shows it
func (sm *StatusManager) Notify(n document.Notice) {
	sm.queue = append(sm.queue, n)
}

// Flush shows the most severe queued notice, the latest among equals
func (sm *StatusManager) Flush() tea.Cmd {
	if len(sm.queue) == 0 {
		return nil
	}
	pick := sm.queue[0]
	for _, n := range sm.queue[1:] {
		if n.Level >= pick.Level {
			pick = n
		}
	}
	sm.queue = sm.queue[:0]
	return sm.show(pick.Text(sm.catalog), pick.Level)
}

// ShowText shows a plain message at level
func (sm *StatusManager) ShowText(text string, level document.Level) tea.Cmd {
	return sm.show(text, level)
}

func (sm *StatusManager) show(text string, level document.Level) tea.Cmd {
	sm.seq++
	sm.Current = &StatusFeedback{Message: text, Level: level}

	d := sm.DefaultDuration
	if level == document.LevelError {
		d = sm.ErrorDuration
	}
	seq := sm.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

// Clear removes the status if msg belongs to the message still shown
func (sm *StatusManager) Clear(msg ClearStatusMsg) {
	if msg.seq == sm.seq {
		sm.Current = nil
	}
}

// View renders the status line, or an empty string
func (sm *StatusManager) View(width int) string {
	if sm.Current == nil {
		return ""
	}
	icon, color := "ℹ", ColorPrimary
	switch sm.Current.Level {
	case document.LevelSuccess:
		icon, color = "✓", ColorSuccess
	case document.LevelWarning:
		icon, color = "⚠", ColorWarning
	case document.LevelError:
		icon, color = "×", ColorDanger
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Width(width).
		Padding(0, 1).
		Render(icon + " " + sm.Current.Message)
}
