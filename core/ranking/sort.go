package ranking

import (
	"sort"
	"time"

	"github.com/CrestNiraj12/tradefeed/domain"
)

// SortHot orders posts by hot score, highest first. Equal scores keep their
// original fetch order. The input slice is not modified.
func SortHot(posts []domain.Post, s *Scorer, now time.Time) []domain.Post {
	type scored struct {
		post  domain.Post
		score float64
	}
	items := make([]scored, len(posts))
	for i, p := range posts {
		items[i] = scored{post: p, score: s.Score(p, now)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	out := make([]domain.Post, len(items))
	for i, it := range items {
		out[i] = it.post
	}
	return out
}

// SortRecent orders posts newest first by parsed timestamp. Equal timestamps,
// including fallbacks to now, keep their original fetch order.
func SortRecent(posts []domain.Post, s *Scorer, now time.Time) []domain.Post {
	type dated struct {
		post    domain.Post
		created time.Time
	}
	items := make([]dated, len(posts))
	for i, p := range posts {
		items[i] = dated{post: p, created: s.Timestamp(p, now)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].created.After(items[j].created)
	})
	out := make([]domain.Post, len(items))
	for i, it := range items {
		out[i] = it.post
	}
	return out
}
