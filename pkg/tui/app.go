// Package tui is the interactive editor: a filterable list of entries next to
// an editor pane, with guided and bulk replace.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/langtable/langtable/pkg/document"
	"github.com/langtable/langtable/pkg/messages"
	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/replace"
	"github.com/langtable/langtable/pkg/translate"
)

type focus int

const (
	focusList focus = iota
	focusEditor
	focusSearch
	focusReplace
)

// Options configures the editor. Translator and Editor are optional.
type Options struct {
	Title      string
	Catalog    *messages.Catalog
	Translator Translator
	Editor     ExternalEditor
	From       string
	To         string
	ShowChips  bool
	ValueWidth int
}

// App is the root bubbletea model
type App struct {
	doc        *document.Document
	opts       Options
	status     *StatusManager
	list       *ListPane
	editor     *EditorPane
	search     *SearchBar
	replaceBar *ReplaceBar
	review     *ReviewModel
	confirm    *ConfirmationModel
	focus      focus
	reviewing  bool
	showHelp   bool
	width      int
	height     int
}

// NewApp creates the editor over doc. status must be the notifier doc was
// created with so that document notices reach the status line.
func NewApp(doc *document.Document, status *StatusManager, opts Options) *App {
	if opts.Title == "" {
		opts.Title = "langtable"
	}
	a := &App{
		doc:        doc,
		opts:       opts,
		status:     status,
		list:       NewListPane(opts.ValueWidth),
		editor:     NewEditorPane(opts.ShowChips),
		search:     NewSearchBar(),
		replaceBar: NewReplaceBar(),
		review:     NewReviewModel(),
		confirm:    NewConfirmation(),
	}
	a.search.SetValue(doc.Query())
	if doc.Selection().Empty() {
		if e, ok := a.list.Selected(doc.Visible()); ok {
			_ = doc.Select(e.Key)
		}
	}
	a.sync()
	return a
}

// Document returns the document being edited
func (a *App) Document() *document.Document {
	return a.doc
}

func (a *App) Init() tea.Cmd {
	return a.status.Flush()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()

	case ClearStatusMsg:
		a.status.Clear(msg)
		return a, nil

	case StatusMsg:
		return a, a.status.ShowText(string(msg), document.LevelInfo)

	case suggestionMsg:
		a.handleSuggestion(msg)

	case copiedMsg:
		if msg.err != nil {
			a.notifyErr(models.External("copy to clipboard", msg.err))
		} else {
			a.status.Notify(document.Notice{Level: document.LevelSuccess, ID: messages.Copied})
		}

	case editorFinishedMsg:
		a.handleEditorFinished(msg)

	case tea.KeyMsg:
		model, cmd := a.handleKey(msg)
		cmds = append(cmds, cmd)
		if model == nil {
			return a, tea.Quit
		}

	default:
		switch a.focus {
		case focusEditor:
			cmds = append(cmds, a.editor.Update(msg))
		case focusSearch:
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			cmds = append(cmds, cmd)
		case focusReplace:
			cmds = append(cmds, a.replaceBar.Update(msg))
		}
	}

	a.sync()
	cmds = append(cmds, a.status.Flush())
	return a, tea.Batch(cmds...)
}

// sync brings the panes in line with the document after a change
func (a *App) sync() {
	sel := a.doc.Selection()
	a.editor.Load(sel)
	a.list.Follow(a.doc.Visible(), sel.Key)

	s := a.doc.Session()
	if s.State() == replace.StateConfirming {
		if !a.reviewing {
			a.review.SetEdits(s.PendingEdits())
			a.reviewing = true
		}
	} else {
		a.reviewing = false
	}
}

func (a *App) layout() {
	bodyHeight := a.bodyHeight()
	listWidth := a.width * 3 / 5
	a.list.SetSize(listWidth, bodyHeight)
	a.editor.SetSize(a.width-listWidth, bodyHeight)
	a.search.SetWidth(a.width)
	a.replaceBar.SetWidth(a.width)
	a.review.SetSize(a.width, a.height)
}

// bodyHeight leaves room for the header, the search bar, the status line and help
func (a *App) bodyHeight() int {
	return max(a.height-6, 5)
}

func (a *App) notifyErr(err error) {
	a.status.Notify(document.Notice{Level: document.LevelError, ID: messages.ErrorID(err), Data: messages.ErrorData(err), Err: err})
}

// handleKey returns a nil model to quit
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return nil, nil
	}

	if a.confirm.Active() {
		return a, a.confirm.Update(msg)
	}

	if a.reviewing && !a.review.Hidden() {
		return a, a.handleReviewKey(msg)
	}

	switch a.focus {
	case focusSearch:
		return a, a.handleSearchKey(msg)
	case focusReplace:
		return a, a.handleReplaceKey(msg)
	case focusEditor:
		return a, a.handleEditorKey(msg)
	}
	return a.handleListKey(msg)
}

func (a *App) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter", "ctrl+s":
		_, _ = a.doc.Commit()
	case "n", "esc":
		a.doc.Cancel()
	case "tab":
		a.review.SetHidden(true)
	default:
		return a.review.Update(msg)
	}
	return nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.search.Reset()
		a.doc.SetQuery("")
		a.focusOn(focusList)
		return nil
	case "enter", "down":
		a.focusOn(focusList)
		return nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != a.doc.Query() {
		a.doc.SetQuery(a.search.Value())
		a.list.SetCursor(0, len(a.doc.Visible()))
	}
	return cmd
}

func (a *App) handleReplaceKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.replaceBar.Close()
		a.focusOn(focusList)
		return nil
	case "tab", "shift+tab":
		return a.replaceBar.Toggle()
	case "enter":
		return a.submitReplace()
	}
	return a.replaceBar.Update(msg)
}

func (a *App) submitReplace() tea.Cmd {
	searchTerm, replaceTerm := a.replaceBar.Terms()

	if a.replaceBar.Kind() == ReplaceGuided {
		if err := a.doc.StartGuided(searchTerm, replaceTerm); err != nil {
			return nil
		}
		a.search.SetValue(searchTerm)
		a.doc.SetQuery(searchTerm)
		a.replaceBar.Close()
		a.focusOn(focusList)
		return nil
	}

	plan, err := a.doc.PlanBulk(searchTerm, replaceTerm)
	if err != nil {
		return nil
	}
	a.replaceBar.Close()
	a.focusOn(focusList)
	if plan.Len() == 0 {
		return nil
	}

	details := make([]string, 0, plan.Len())
	for _, e := range plan.Changes() {
		details = append(details, HeaderStyle.Render(e.Key)+"  "+RenderDiff(e.Before, e.After))
	}
	a.confirm.Show(ConfirmationConfig{
		Title: "Replace all",
		Message: a.opts.Catalog.Text(messages.BulkPlanned, map[string]any{
			"Count": plan.Len(), "Search": searchTerm, "Replace": replaceTerm,
		}),
		Details:     details,
		Destructive: true,
		YesLabel:    "Replace",
		NoLabel:     "Cancel",
		Width:       min(max(a.width-10, 40), 100),
	}, func() tea.Cmd {
		_, _ = a.doc.ConfirmBulk()
		return nil
	}, func() tea.Cmd {
		a.doc.DiscardBulk()
		return nil
	})
	return nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.editor.Revert()
		a.focusOn(focusList)
		return nil
	case "ctrl+s":
		if err := a.doc.EditTarget(a.editor.Value()); err == nil {
			a.editor.MarkSaved()
		}
		return nil
	case "ctrl+y":
		return a.applySuggestion()
	case "ctrl+t":
		return a.requestTranslation()
	}
	return a.editor.Update(msg)
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.doc.Visible())
	session := a.doc.Session()

	switch msg.String() {
	case "q":
		return nil, nil
	case "up", "k":
		a.moveCursor(-1, n)
	case "down", "j":
		a.moveCursor(1, n)
	case "pgup":
		a.moveCursor(-a.list.PageSize(), n)
	case "pgdown":
		a.moveCursor(a.list.PageSize(), n)
	case "home", "g":
		a.moveCursor(-n, n)
	case "end", "G":
		a.moveCursor(n, n)
	case "enter", "e":
		if !a.doc.Selection().Empty() {
			a.focusOn(focusEditor)
			return a, a.editor.Focus()
		}
	case "/":
		a.focusOn(focusSearch)
		return a, a.search.SetActive(true)
	case "m", "tab":
		a.doc.CycleMode()
		a.list.SetCursor(0, len(a.doc.Visible()))
		a.selectUnderCursor()
	case "r", "R":
		if session != nil {
			a.notifyErr(models.Validation("start replace", models.ErrReplaceActive))
			return a, nil
		}
		kind := ReplaceGuided
		if msg.String() == "R" {
			kind = ReplaceBulk
		}
		a.focusOn(focusReplace)
		return a, a.replaceBar.Open(kind, a.doc.Query())
	case "y":
		if session != nil {
			_, _ = a.doc.Dispatch(replace.ReplaceOne{})
		}
	case "n":
		if session != nil {
			_, _ = a.doc.Dispatch(replace.Skip{})
		}
	case "v":
		if a.reviewing {
			a.review.SetEdits(session.PendingEdits())
		}
	case "ctrl+s":
		if session != nil {
			_, _ = a.doc.Commit()
		}
	case "esc":
		if session != nil {
			a.doc.Cancel()
		} else if a.doc.Query() != "" {
			a.search.Reset()
			a.doc.SetQuery("")
		}
	case "t":
		return a, a.requestTranslation()
	case "a":
		return a, a.applySuggestion()
	case "c":
		if sel := a.doc.Selection(); !sel.Empty() {
			return a, copyCmd(sel.Source)
		}
	case "C":
		if sel := a.doc.Selection(); !sel.Empty() {
			return a, copyCmd(sel.Target)
		}
	case "E":
		return a, a.openExternalEditor()
	case "ctrl+r":
		_ = a.doc.Reload()
	case "?":
		a.showHelp = !a.showHelp
	}
	return a, nil
}

func (a *App) focusOn(f focus) {
	if a.focus == focusSearch && f != focusSearch {
		a.search.SetActive(false)
	}
	if a.focus == focusEditor && f != focusEditor {
		a.editor.Blur()
	}
	a.focus = f
}

func (a *App) moveCursor(delta, n int) {
	a.list.Move(delta, n)
	a.selectUnderCursor()
}

// selectUnderCursor shows the entry under the cursor. During a guided
// replace this also moves the replace cursor onto candidates.
func (a *App) selectUnderCursor() {
	e, ok := a.list.Selected(a.doc.Visible())
	if !ok {
		return
	}
	if e.Key != a.doc.Selection().Key {
		_ = a.doc.Select(e.Key)
	}
}

func (a *App) requestTranslation() tea.Cmd {
	sel := a.doc.Selection()
	if sel.Empty() {
		a.notifyErr(models.Validation("translate", models.ErrNoSelection))
		return nil
	}
	if a.opts.Translator == nil {
		return a.status.ShowText("Translation is not configured", document.LevelWarning)
	}
	a.editor.SetTranslating(sel.Key)
	a.status.Notify(document.Notice{Level: document.LevelInfo, ID: messages.Translating, Data: map[string]any{"Key": sel.Key}})
	return translateCmd(a.opts.Translator, sel.Key, translate.Request{Text: sel.Source, From: a.opts.From, To: a.opts.To})
}

func (a *App) handleSuggestion(msg suggestionMsg) {
	if msg.err != nil {
		a.editor.SetTranslating("")
		a.notifyErr(msg.err)
		return
	}
	s := Suggestion{Key: msg.key, Text: msg.result.Text, Detected: msg.result.DetectedLanguage}
	if a.editor.SetSuggestion(s) {
		a.status.Notify(document.Notice{Level: document.LevelSuccess, ID: messages.SuggestionReady, Data: map[string]any{"Key": msg.key}})
	}
}

func (a *App) applySuggestion() tea.Cmd {
	s, ok := a.editor.Suggestion()
	if !ok {
		return nil
	}
	if err := a.doc.ApplySuggestion(s.Text); err != nil {
		return nil
	}
	a.editor.ClearSuggestion()
	a.editor.SetValue(s.Text)
	a.editor.MarkSaved()
	return nil
}

func (a *App) openExternalEditor() tea.Cmd {
	sel := a.doc.Selection()
	if sel.Empty() || a.opts.Editor == nil {
		return nil
	}
	if a.doc.Session() != nil {
		a.notifyErr(models.Validation("edit target", models.ErrReplaceActive))
		return nil
	}
	return externalEditCmd(a.opts.Editor, sel.Key, sel.Target)
}

func (a *App) handleEditorFinished(msg editorFinishedMsg) {
	if msg.err != nil {
		if msg.path != "" {
			if err := os.Remove(msg.path); err != nil {
				log.Debug().Err(err).Str("path", msg.path).Msg("could not remove editor temp file")
			}
		}
		a.notifyErr(models.IOError("external editor", msg.err))
		return
	}
	value, err := a.opts.Editor.ReadTempFile(msg.path)
	if err != nil {
		a.notifyErr(models.IOError("external editor", err))
		return
	}
	if a.doc.Selection().Key != msg.key {
		if err := a.doc.Select(msg.key); err != nil {
			return
		}
	}
	if value == a.doc.Selection().Target {
		return
	}
	if err := a.doc.EditTarget(value); err != nil {
		log.Warn().Err(err).Str("key", msg.key).Msg("external edit not saved")
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	visible := a.doc.Visible()
	header := renderHeader(a.width, a.opts.Title, a.doc.Counts(), len(visible), a.doc.Mode())

	bar := a.search.View()
	if a.replaceBar.Active() {
		bar = a.replaceBar.View()
	}

	session := a.doc.Session()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.list.View(visible, a.doc.Query(), session, a.focus == focusList),
		a.editor.View(a.doc.Hints(), a.focus == focusEditor),
	)

	switch {
	case a.confirm.Active():
		body = lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center, a.confirm.View())
	case a.reviewing && !a.review.Hidden():
		body = lipgloss.Place(a.width, a.bodyHeight(), lipgloss.Center, lipgloss.Center,
			a.review.View(session.Search(), session.Replacement()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bar,
		body,
		a.status.View(a.width),
		a.helpLine(session),
	)
}

func (a *App) helpLine(session *replace.Session) string {
	var help string
	switch {
	case a.confirm.Active():
		help = "y confirm · n cancel"
	case a.focus == focusSearch:
		help = "type to filter · enter done · esc clear"
	case a.focus == focusReplace:
		help = "tab switch field · enter start · esc close"
	case a.focus == focusEditor:
		help = "ctrl+s save · ctrl+t translate · ctrl+y apply suggestion · esc discard"
	case session != nil && a.reviewing:
		help = "v review · ctrl+s commit · esc cancel replace · ↑/↓ jump to a match"
	case session != nil:
		help = fmt.Sprintf("match %d/%d · y replace · n skip · ctrl+s commit · esc cancel", session.Cursor()+1, session.Len())
	case a.showHelp:
		help = "↑/↓ move · enter edit · / search · m filter · r replace · R replace all · t translate · a apply · c/C copy · E $EDITOR · ctrl+r reload · q quit"
	default:
		help = "? help · / search · m filter · r replace · q quit"
	}
	return HelpStyle.Width(a.width).Padding(0, 1).Render(help)
}
