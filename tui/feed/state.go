package feed

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/core/access"
	"github.com/CrestNiraj12/tradefeed/core/filter"
	"github.com/CrestNiraj12/tradefeed/core/likes"
	"github.com/CrestNiraj12/tradefeed/core/ranking"
	"github.com/CrestNiraj12/tradefeed/core/timeline"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/tui/common"
)

const (
	defaultLimit   = 50
	likeChangesBuf = 64
)

// Tabs lists the feed tabs in display order.
var Tabs = []string{
	filter.TabAll, "signals", "news", "analysis", "code",
	"education", "macro", "video", "general", filter.TabLiked,
}

// PostsLoadedMsg is sent when the feed fetch completes successfully.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	ReqSeq int
}

// PostsErrorMsg is sent when the feed fetch fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// LikeResultMsg is sent after a like toggle resolves. By then the store has
// already confirmed or rolled back.
type LikeResultMsg struct {
	ID  string
	Err error
}

// LikeChangedMsg is forwarded from the like store subscription.
type LikeChangedMsg struct {
	ID    string
	State domain.LikeState
}

// PendingPolledMsg carries the timeline controller's pending count.
type PendingPolledMsg struct {
	Count int
}

// OpenPostMsg asks the root model to page the full body of an unlocked post.
type OpenPostMsg struct {
	Post domain.Post
}

// PrefsChangedMsg is emitted when the tab or sort mode changes.
type PrefsChangedMsg struct {
	Tab  string
	Mode domain.SortMode
}

// StatusMsg sets the transient status line.
type StatusMsg struct {
	Text string
}

// Deps holds the engine pieces the feed view drives.
type Deps struct {
	Posts    app.PostService
	Likes    *likes.Store
	Timeline *timeline.Controller
	Scorer   *ranking.Scorer
	Viewer   access.Viewer
	PageSize int
	Tab      string
	Mode     domain.SortMode
}

type modelServices struct {
	postSvc  app.PostService
	likes    *likes.Store
	timeline *timeline.Controller
	scorer   *ranking.Scorer
	pipeline *filter.Pipeline
	viewer   access.Viewer
	pageSize int

	likeChanges chan LikeChangedMsg
	unsubscribe func()
}

type feedState struct {
	tab     string
	filters domain.Filters
	posts   []domain.Post // As fetched, plus merged new posts
	visible []domain.Post // After the pipeline
	cursor  int
	loading bool
	err     error
	pending int
	reqSeq  int
}

type uiState struct {
	keys       common.KeyMap
	spinner    spinner.Model
	width      int
	height     int
	startIndex int
}

type queryState struct {
	queryInput  bool
	queryBuffer string
}

// Model holds the state for the feed view.
type Model struct {
	modelServices
	feedState
	uiState
	queryState
}
