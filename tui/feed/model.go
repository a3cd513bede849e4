package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/tradefeed/core/filter"
	"github.com/CrestNiraj12/tradefeed/core/ranking"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/tui/common"
)

// New creates a feed model with injected dependencies. It subscribes to the
// like store; call Close when the program exits.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	scorer := deps.Scorer
	if scorer == nil {
		scorer = ranking.NewScorer()
	}
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = defaultLimit
	}

	m := Model{
		modelServices: modelServices{
			postSvc:  deps.Posts,
			likes:    deps.Likes,
			timeline: deps.Timeline,
			scorer:   scorer,
			viewer:   deps.Viewer,
			pageSize: pageSize,
		},
		feedState: feedState{
			tab:     parseTab(deps.Tab),
			filters: domain.Filters{Mode: domain.ParseSortMode(string(deps.Mode))},
			loading: true,
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}

	if deps.Likes != nil {
		m.pipeline = filter.New(scorer, deps.Likes)
		changes := make(chan LikeChangedMsg, likeChangesBuf)
		m.likeChanges = changes
		m.unsubscribe = deps.Likes.SubscribeAll(func(id string, st domain.LikeState) {
			// Never block the toggling goroutine; a dropped change is
			// repainted by the LikeResultMsg that follows it.
			select {
			case changes <- LikeChangedMsg{ID: id, State: st}:
			default:
			}
		})
	} else {
		m.pipeline = filter.New(scorer, nil)
	}
	return m
}

func parseTab(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range Tabs {
		if t == v {
			return t
		}
	}
	return filter.TabAll
}

// Init starts the initial feed fetch and the background listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.reqSeq),
		m.spinner.Tick,
		m.waitForLikeChange(),
		m.pollPending(),
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Close drops the like store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Visible returns the posts currently rendered, in order.
func (m Model) Visible() []domain.Post {
	return m.visible
}

// Tab returns the active tab key.
func (m Model) Tab() string {
	return m.tab
}

// Filters returns the active filter set.
func (m Model) Filters() domain.Filters {
	return m.filters
}

// Loading returns whether the feed is currently loading.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the current fetch error, if any.
func (m Model) Err() error {
	return m.err
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// InputActive reports whether the ticker query prompt owns the keyboard.
func (m Model) InputActive() bool {
	return m.queryInput
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.visible) == 0 || m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Post{}, false
	}
	return m.visible[m.cursor], true
}
