// Package filter narrows and orders a post collection for one feed view.
package filter

import (
	"strings"
	"time"

	"github.com/CrestNiraj12/tradefeed/core/ranking"
	"github.com/CrestNiraj12/tradefeed/domain"
)

// Tab keys that are not content types.
const (
	TabAll   = "all"
	TabFeed  = "feed"
	TabLiked = "liked"
)

// LikedLookup answers whether the viewer has liked a post locally.
// The like store implements it.
type LikedLookup interface {
	IsLiked(postID string) bool
}

// Pipeline applies the feed's filter steps in a fixed order.
type Pipeline struct {
	Scorer *ranking.Scorer
	Liked  LikedLookup
	Now    func() time.Time
}

// New creates a Pipeline with the wall clock.
func New(scorer *ranking.Scorer, liked LikedLookup) *Pipeline {
	return &Pipeline{Scorer: scorer, Liked: liked, Now: time.Now}
}

// Result is the filtered, ordered collection.
type Result struct {
	Posts []domain.Post
}

// Empty reports the terminal "nothing matches" state, which is not an error.
func (r Result) Empty() bool {
	return len(r.Posts) == 0
}

// Apply runs every step and returns the ordered posts.
func (p *Pipeline) Apply(posts []domain.Post, tab string, f domain.Filters) []domain.Post {
	return p.Run(posts, tab, f).Posts
}

// Run is Apply wrapped in a Result.
func (p *Pipeline) Run(posts []domain.Post, tab string, f domain.Filters) Result {
	now := p.now()
	out := p.byTab(posts, tab)
	out = keep(out, matchEnum(marketVocab, f.Market, func(x domain.Post) string { return x.Market }))
	out = byTopic(out, f.Topic)
	out = byFacets(out, f.Facets)
	out = keep(out, matchEnum(sentimentVocab, f.Sentiment, func(x domain.Post) string { return x.Sentiment }))
	out = keep(out, matchPrice(f.Price))
	out = keep(out, matchEnum(directionVocab, f.Direction, func(x domain.Post) string { return x.Direction }))
	out = keep(out, matchEnum(timeframeVocab, f.Timeframe, func(x domain.Post) string { return x.Timeframe }))
	out = keep(out, matchEnum(riskVocab, f.Risk, func(x domain.Post) string { return x.Risk }))
	out = keep(out, p.matchPeriod(f.Period, now))
	if f.VerifiedOnly {
		out = keep(out, func(x domain.Post) bool { return x.AuthorVerified })
	}
	out = byTicker(out, f.Query)

	if f.Mode == domain.ModeRecent {
		out = ranking.SortRecent(out, p.Scorer, now)
	} else {
		out = ranking.SortHot(out, p.Scorer, now)
	}
	return Result{Posts: out}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) byTab(posts []domain.Post, tab string) []domain.Post {
	key := strings.ToLower(strings.TrimSpace(tab))
	switch key {
	case "", TabAll, TabFeed:
		return keep(posts, nil)
	case TabLiked:
		if p.Liked == nil {
			return keep(posts, func(x domain.Post) bool { return x.IsLiked })
		}
		return keep(posts, func(x domain.Post) bool { return p.Liked.IsLiked(x.ID) })
	}
	for _, t := range domain.ContentTypes {
		if key == string(t) || key == string(t)+"s" {
			return keep(posts, func(x domain.Post) bool { return domain.ParseContentType(string(x.Type)) == t })
		}
	}
	return keep(posts, nil)
}

func byTopic(posts []domain.Post, topic string) []domain.Post {
	if domain.IsNoFilter(topic) {
		return keep(posts, nil)
	}
	return keep(posts, func(x domain.Post) bool { return strings.EqualFold(strings.TrimSpace(x.Topic), strings.TrimSpace(topic)) })
}

// byFacets keeps posts matching any selected facet against their tags or type.
func byFacets(posts []domain.Post, facets []string) []domain.Post {
	want := make(map[string]struct{}, len(facets))
	for _, f := range facets {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !domain.IsNoFilter(f) {
			want[f] = struct{}{}
		}
	}
	if len(want) == 0 {
		return keep(posts, nil)
	}
	return keep(posts, func(x domain.Post) bool {
		if _, ok := want[string(domain.ParseContentType(string(x.Type)))]; ok {
			return true
		}
		for _, tag := range x.Tags {
			if _, ok := want[strings.ToLower(strings.TrimSpace(tag))]; ok {
				return true
			}
		}
		return false
	})
}

func byTicker(posts []domain.Post, query string) []domain.Post {
	q := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(query), "$"))
	if q == "" {
		return keep(posts, nil)
	}
	return keep(posts, func(x domain.Post) bool {
		return strings.Contains(strings.ToLower(strings.TrimPrefix(x.Ticker, "$")), q)
	})
}

// keep returns a fresh slice of the posts pred accepts. A nil pred accepts all.
func keep(posts []domain.Post, pred func(domain.Post) bool) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, x := range posts {
		if pred == nil || pred(x) {
			out = append(out, x)
		}
	}
	return out
}
