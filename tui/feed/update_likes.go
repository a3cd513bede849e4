package feed

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/core/filter"
	"github.com/CrestNiraj12/tradefeed/domain"
)

func (m Model) handleLikeMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LikeChangedMsg:
		// The liked tab is the only view whose membership depends on like state.
		if m.tab == filter.TabLiked && !msg.State.Pending {
			m.refilter(false)
		}
		return m, m.waitForLikeChange()

	case LikeResultMsg:
		if msg.Err == nil {
			return m, nil
		}
		if errors.Is(msg.Err, domain.ErrStoreClosed) {
			return m, nil
		}
		return m, status("Reverted: " + msg.Err.Error())
	}
	return m, nil
}

// likeState is what the card renders: the store's view, or the fetched
// values when the store has no entry.
func (m Model) likeState(p domain.Post) domain.LikeState {
	if m.likes != nil {
		if st, ok := m.likes.Get(p.ID); ok {
			return st
		}
	}
	return domain.LikeState{IsLiked: p.IsLiked, LikesCount: p.Metrics.Likes}
}

func (m Model) startLike() (Model, tea.Cmd) {
	p, ok := m.SelectedPost()
	if !ok || m.likes == nil {
		return m, nil
	}
	if m.likes.Pending(p.ID) {
		return m, nil
	}
	m.likes.Initialize(p.ID, p.IsLiked, p.Metrics.Likes)
	return m, m.toggleLike(p.ID)
}
