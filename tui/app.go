package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/infra/config"
	"github.com/CrestNiraj12/tradefeed/infra/pager"
	"github.com/CrestNiraj12/tradefeed/tui/common"
	"github.com/CrestNiraj12/tradefeed/tui/feed"
)

// Logger is the subset of *log.Logger the root model reports through.
type Logger interface {
	Printf(format string, v ...any)
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed      feed.Deps
	Pager     *pager.EnvPager
	StatePath string
	Log       Logger
}

// App is the root Bubble Tea model. It owns the status line and the side
// effects that outlive the feed view: paging a post and saving UI state.
type App struct {
	deps   Deps
	feed   feed.Model
	keys   common.KeyMap
	status string // Transient status message (e.g. "Reverted: ...")
}

type pagerDoneMsg struct {
	path string
	err  error
}

type prefsSavedMsg struct {
	err error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps: deps,
		feed: feed.New(deps.Feed),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.feed.Close()
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) && !a.feed.InputActive() {
			a.feed.Close()
			return a, tea.Quit
		}
		// Any key clears a stale status before the feed reacts to it.
		a.status = ""

	case feed.StatusMsg:
		a.status = msg.Text
		return a, nil

	case feed.PrefsChangedMsg:
		return a, a.savePrefs(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			a.logf("saving ui state: %v", msg.err)
		}
		return a, nil

	case feed.OpenPostMsg:
		return a, a.openPager(msg)

	case pagerDoneMsg:
		if a.deps.Pager != nil {
			if err := a.deps.Pager.Cleanup(msg.path); err != nil {
				a.logf("%v", err)
			}
		}
		if msg.err != nil {
			a.status = "Pager failed: " + msg.err.Error()
		}
		return a, nil
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) savePrefs(msg feed.PrefsChangedMsg) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	st := config.UIState{Tab: msg.Tab, Mode: string(msg.Mode)}
	return func() tea.Msg {
		return prefsSavedMsg{err: config.SaveUIState(path, st)}
	}
}

func (a App) openPager(msg feed.OpenPostMsg) tea.Cmd {
	if a.deps.Pager == nil {
		return nil
	}
	text := msg.Post.Title + "\n\n" + msg.Post.Body
	cmd, path, err := a.deps.Pager.Cmd(text)
	if err != nil {
		return func() tea.Msg { return feed.StatusMsg{Text: "Pager failed: " + err.Error()} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return pagerDoneMsg{path: path, err: err}
	})
}

func (a App) logf(format string, v ...any) {
	if a.deps.Log != nil {
		a.deps.Log.Printf(format, v...)
	}
}

// View renders the feed plus the transient status line.
func (a App) View() string {
	s := a.feed.View()
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
