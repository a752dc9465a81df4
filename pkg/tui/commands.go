package tui

import (
	"context"
	"os/exec"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/langtable/langtable/pkg/translate"
)

// Translator fetches machine translations
type Translator interface {
	Translate(ctx context.Context, req translate.Request) (translate.Result, error)
}

// ExternalEditor edits a value in the user's $EDITOR
type ExternalEditor interface {
	Command(path string) *exec.Cmd
	WriteTempFile(pattern, content string) (string, error)
	ReadTempFile(path string) (string, error)
}

type suggestionMsg struct {
	key    string
	result translate.Result
	err    error
}

type copiedMsg struct {
	err error
}

type editorFinishedMsg struct {
	key  string
	path string
	err  error
}

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

func translateCmd(t Translator, key string, req translate.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := t.Translate(context.Background(), req)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("translation failed")
		}
		return suggestionMsg{key: key, result: res, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

func externalEditCmd(e ExternalEditor, key, value string) tea.Cmd {
	path, err := e.WriteTempFile("langtable-*.txt", value)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{key: key, err: err} }
	}
	return tea.ExecProcess(e.Command(path), func(err error) tea.Msg {
		return editorFinishedMsg{key: key, path: path, err: err}
	})
}
