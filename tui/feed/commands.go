package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	fetchTimeout  = 20 * time.Second
	pollInterval  = time.Second
	toggleTimeout = 15 * time.Second
)

func (m Model) fetchPosts(reqSeq int) tea.Cmd {
	svc := m.postSvc
	if svc == nil {
		return nil
	}
	tab := m.tab
	filters := m.filters
	limit := m.pageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		got, err := svc.FetchPosts(ctx, tab, filters, limit)
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: got, ReqSeq: reqSeq}
	}
}

func (m Model) toggleLike(id string) tea.Cmd {
	store := m.likes
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), toggleTimeout)
		defer cancel()
		return LikeResultMsg{ID: id, Err: store.Toggle(ctx, id)}
	}
}

// waitForLikeChange blocks on the store subscription and turns the next
// transition into a message. It is re-armed after every LikeChangedMsg.
func (m Model) waitForLikeChange() tea.Cmd {
	ch := m.likeChanges
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) pollPending() tea.Cmd {
	ctrl := m.timeline
	if ctrl == nil {
		return nil
	}
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return PendingPolledMsg{Count: ctrl.PendingCount()}
	})
}

func (m Model) emitPrefsChanged() tea.Cmd {
	tab, mode := m.tab, m.filters.Mode
	return func() tea.Msg {
		return PrefsChangedMsg{Tab: tab, Mode: mode}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}
