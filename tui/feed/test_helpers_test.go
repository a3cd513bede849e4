package feed

import (
	"context"
	"errors"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/core/likes"
	"github.com/CrestNiraj12/tradefeed/core/timeline"
	"github.com/CrestNiraj12/tradefeed/domain"
)

type stubPosts struct {
	posts []domain.Post
	err   error
}

func (s stubPosts) FetchPosts(context.Context, string, domain.Filters, int) ([]domain.Post, error) {
	return s.posts, s.err
}

type stubLikes struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (s *stubLikes) Like(_ context.Context, id string) (app.LikeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "like "+id)
	return app.LikeReceipt{}, s.err
}

func (s *stubLikes) Unlike(_ context.Context, id string) (app.LikeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "unlike "+id)
	return app.LikeReceipt{}, s.err
}

// scopedPosts answers like a backend that honors the tab and market
// parameters, and records every request.
type scopedPosts struct {
	mu       sync.Mutex
	all      []domain.Post
	requests []scopedRequest
}

type scopedRequest struct {
	tab     string
	filters domain.Filters
}

func (s *scopedPosts) FetchPosts(_ context.Context, tab string, f domain.Filters, _ int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, scopedRequest{tab: tab, filters: f})
	var out []domain.Post
	for _, p := range s.all {
		if tab != "" && tab != "all" && string(p.Type) != strings.TrimSuffix(tab, "s") {
			continue
		}
		if !domain.IsNoFilter(f.Market) && p.Market != f.Market {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *scopedPosts) lastRequest() scopedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return scopedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

var errBackend = errors.New("backend down")

// runCmd executes cmd and flattens batches into the messages they produce.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds every message cmd produces back into m, except prefs and
// status messages, which belong to the root model.
func deliver(m Model, cmd tea.Cmd) Model {
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case PostsLoadedMsg, PostsErrorMsg:
			m, _ = m.Update(msg)
		}
	}
	return m
}

func prefsFrom(msgs []tea.Msg) (PrefsChangedMsg, bool) {
	for _, msg := range msgs {
		if p, ok := msg.(PrefsChangedMsg); ok {
			return p, true
		}
	}
	return PrefsChangedMsg{}, false
}

func makePost(id, createdAt string, likesCount int) domain.Post {
	return domain.Post{
		ID:        id,
		AuthorID:  "author-" + id,
		Author:    "Author " + id,
		CreatedAt: createdAt,
		Type:      domain.TypeNews,
		Title:     "Title " + id,
		Body:      "Body of " + id,
		Metrics:   domain.Metrics{Likes: likesCount},
	}
}

type harness struct {
	model Model
	likes *stubLikes
	store *likes.Store
	ctrl  *timeline.Controller
}

func newHarness(posts ...domain.Post) harness {
	svc := &stubLikes{}
	store := likes.New(svc, likes.WithKeyFunc(func() string { return "test-key" }))
	ctrl := timeline.New()
	m := New(Deps{
		Posts:    stubPosts{posts: posts},
		Likes:    store,
		Timeline: ctrl,
	})
	m.width = 120
	m.height = 60
	m, _ = m.Update(PostsLoadedMsg{Posts: posts, ReqSeq: m.reqSeq})
	return harness{model: m, likes: svc, store: store, ctrl: ctrl}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func visibleIDs(m Model) []string {
	out := make([]string, 0, len(m.visible))
	for _, p := range m.visible {
		out = append(out, p.ID)
	}
	return out
}
