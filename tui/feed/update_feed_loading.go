package feed

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.posts = msg.Posts
		m.seedLikes(msg.Posts)
		m.refilter(true)
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PendingPolledMsg:
		m.pending = msg.Count
		return m, m.pollPending()
	}
	return m, nil
}

// seedLikes records the server's like state for posts the store has not seen.
// Existing entries win so an in-flight toggle is never overwritten by a refetch.
func (m Model) seedLikes(posts []domain.Post) {
	if m.likes == nil {
		return
	}
	for _, p := range posts {
		m.likes.Initialize(p.ID, p.IsLiked, p.Metrics.Likes)
	}
}

// refilter reruns the pipeline over the fetched posts. When resetCursor is
// false the cursor stays on the same post id if it is still visible.
func (m *Model) refilter(resetCursor bool) {
	selected := ""
	if p, ok := m.SelectedPost(); ok && !resetCursor {
		selected = p.ID
	}
	m.visible = m.pipeline.Apply(m.posts, m.tab, m.filters)
	m.cursor = 0
	if selected != "" {
		for i, p := range m.visible {
			if p.ID == selected {
				m.cursor = i
				break
			}
		}
	}
	if resetCursor {
		m.startIndex = 0
	}
	m.ensureCursorVisible()
}

// refetch drops stale responses by bumping the request sequence.
func (m *Model) refetch() tea.Cmd {
	m.reqSeq++
	m.loading = true
	return m.fetchPosts(m.reqSeq)
}

// loadNew merges buffered new posts at the top of the list. Posts that were
// only announced trigger a refetch.
func (m *Model) loadNew() tea.Cmd {
	if m.timeline == nil {
		return nil
	}
	merge := m.timeline.LoadNew(m.posts)
	m.pending = 0
	if !merge.ScrollToTop {
		return status("No new posts.")
	}

	m.posts = merge.Posts
	fresh := merge.Posts[:merge.Added]
	m.seedLikes(fresh)
	shown := m.pipeline.Apply(fresh, m.tab, m.filters)
	m.visible = append(shown, m.visible...)
	m.cursor = 0
	m.startIndex = 0

	if merge.Undelivered > 0 {
		return tea.Batch(m.refetch(), status(fmt.Sprintf("Loading %d new posts...", merge.Added+merge.Undelivered)))
	}
	return status(fmt.Sprintf("%d new posts.", merge.Added))
}
