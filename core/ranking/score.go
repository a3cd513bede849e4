// Package ranking computes the time-decayed hot score and the feed orderings
// built on it.
package ranking

import (
	"math"
	"sync"
	"time"

	"github.com/CrestNiraj12/tradefeed/domain"
)

const (
	likeWeight    = 1.0
	commentWeight = 4.0
	repostWeight  = 6.0
	viewWeight    = 0.01

	// GraceHours is the age below which a post is not decayed at all.
	GraceHours = 2.0
	// Gravity is the exponent of the age penalty.
	Gravity = 1.8
)

// Engagement is the weighted sum of a post's counters. Negative counters count as zero.
func Engagement(m domain.Metrics) float64 {
	return float64(nonNeg(m.Likes))*likeWeight +
		float64(nonNeg(m.Comments))*commentWeight +
		float64(nonNeg(m.Reposts))*repostWeight +
		float64(nonNeg(m.Views))*viewWeight
}

// Penalty is the age divisor: 1 inside the grace window, then (h - 2 + 1)^1.8.
func Penalty(hoursAgo float64) float64 {
	if math.IsNaN(hoursAgo) || hoursAgo < GraceHours {
		return 1
	}
	return math.Pow(hoursAgo-GraceHours+1, Gravity)
}

// HotScore is engagement divided by the age penalty, floored at zero.
func HotScore(m domain.Metrics, hoursAgo float64) float64 {
	score := Engagement(m) / Penalty(hoursAgo)
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return score
}

// Logger is the subset of *log.Logger the scorer writes fallback notices to.
type Logger interface {
	Printf(format string, v ...any)
}

// FallbackRecorder counts timestamps that fell back to now.
type FallbackRecorder interface {
	TimestampFallback()
}

// Scorer scores posts against a clock, logging and counting malformed timestamps.
type Scorer struct {
	log      Logger
	recorder FallbackRecorder

	mu       sync.Mutex
	reported map[fallbackKey]struct{}
}

type fallbackKey struct {
	postID string
	raw    string
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets where fallback notices are written.
func WithLogger(l Logger) Option {
	return func(s *Scorer) { s.log = l }
}

// WithRecorder sets the fallback counter.
func WithRecorder(r FallbackRecorder) Option {
	return func(s *Scorer) { s.recorder = r }
}

// NewScorer creates a Scorer. With no options fallbacks are silent.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the hot score of p as seen at now.
func (s *Scorer) Score(p domain.Post, now time.Time) float64 {
	created := s.Timestamp(p, now)
	return HotScore(p.Metrics, now.Sub(created).Hours())
}

func nonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
