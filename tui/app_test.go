package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/core/likes"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/infra/config"
	"github.com/CrestNiraj12/tradefeed/tui/feed"
)

type stubPosts struct{}

func (stubPosts) FetchPosts(context.Context, string, domain.Filters, int) ([]domain.Post, error) {
	return nil, nil
}

type stubLikes struct{}

func (stubLikes) Like(context.Context, string) (app.LikeReceipt, error)   { return app.LikeReceipt{}, nil }
func (stubLikes) Unlike(context.Context, string) (app.LikeReceipt, error) { return app.LikeReceipt{}, nil }

func newTestApp(t *testing.T) App {
	t.Helper()
	return NewApp(Deps{
		Feed: feed.Deps{
			Posts: stubPosts{},
			Likes: likes.New(stubLikes{}),
		},
		StatePath: filepath.Join(t.TempDir(), "ui_state.json"),
	})
}

func TestApp_QuitKeys(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c must quit")
	}
}

func TestApp_QDoesNotQuitWhileTyping(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	a = model.(App)
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("q must be typed into the ticker prompt")
		}
	}
	if !model.(App).feed.InputActive() {
		t.Fatalf("prompt should still be open")
	}
}

func TestApp_StatusLineSetAndCleared(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(feed.StatusMsg{Text: "Reverted: boom"})
	a = model.(App)
	if !strings.Contains(a.View(), "Reverted: boom") {
		t.Fatalf("status not rendered")
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if strings.Contains(model.(App).View(), "Reverted: boom") {
		t.Fatalf("status must clear on next key")
	}
}

func TestApp_PrefsChangedPersistsTabAndMode(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(feed.PrefsChangedMsg{Tab: "signals", Mode: domain.ModeRecent})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	msg := cmd()
	if saved, ok := msg.(prefsSavedMsg); !ok || saved.err != nil {
		t.Fatalf("unexpected save result: %#v", msg)
	}
	st, err := config.LoadUIState(a.deps.StatePath)
	if err != nil {
		t.Fatalf("load state failed: %v", err)
	}
	if st.Tab != "signals" || st.Mode != "recent" {
		t.Fatalf("unexpected persisted state: %#v", st)
	}
}

func TestApp_PrefsWithoutPathIsNoop(t *testing.T) {
	a := newTestApp(t)
	a.deps.StatePath = ""
	if _, cmd := a.Update(feed.PrefsChangedMsg{Tab: "news"}); cmd != nil {
		t.Fatalf("expected no save without a state path")
	}
}

func TestApp_OpenPostWithoutPagerIsNoop(t *testing.T) {
	a := newTestApp(t)
	if _, cmd := a.Update(feed.OpenPostMsg{Post: domain.Post{ID: "1"}}); cmd != nil {
		t.Fatalf("expected no command without a pager")
	}
}

func TestApp_PagerDoneReportsFailure(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(pagerDoneMsg{path: filepath.Join(t.TempDir(), "missing"), err: context.Canceled})
	if !strings.Contains(model.(App).View(), "Pager failed") {
		t.Fatalf("expected pager failure status")
	}
}
