package ranking

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/tradefeed/domain"
)

var absoluteLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var relativeRe = regexp.MustCompile(`^(\d+)\s*([a-z]+)\s+ago$`)

var relativeUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "wk": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	"mo": 30 * 24 * time.Hour, "month": 30 * 24 * time.Hour, "months": 30 * 24 * time.Hour,
	"y": 365 * 24 * time.Hour, "yr": 365 * 24 * time.Hour, "year": 365 * 24 * time.Hour, "years": 365 * 24 * time.Hour,
}

// ParseTimestamp parses relative ("2h ago") and absolute timestamps.
// Times in the future are clamped to now.
func ParseTimestamp(raw string, now time.Time) (time.Time, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return time.Time{}, false
	}
	switch v {
	case "now", "just now":
		return now, true
	case "yesterday":
		return now.Add(-24 * time.Hour), true
	}

	if m := relativeRe.FindStringSubmatch(v); m != nil {
		unit, ok := relativeUnits[m[2]]
		if !ok {
			return time.Time{}, false
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return time.Time{}, false
		}
		// Ages beyond the Duration range saturate instead of wrapping into the future.
		age := time.Duration(math.MaxInt64)
		if err == nil && n <= int64(age/unit) {
			age = time.Duration(n) * unit
		}
		return clampFuture(now.Add(-age), now), true
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return clampFuture(t, now), true
		}
	}

	if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
		// 13+ digits is epoch milliseconds.
		if n >= 1e12 {
			return clampFuture(time.UnixMilli(n), now), true
		}
		return clampFuture(time.Unix(n, 0), now), true
	}
	return time.Time{}, false
}

// ParseTimestampOrNow is the fail-open path: malformed input is treated as now
// (no decay) so bad data never hides a post. Each occurrence is logged and counted.
func (s *Scorer) ParseTimestampOrNow(raw string, now time.Time) time.Time {
	if t, ok := ParseTimestamp(raw, now); ok {
		return t
	}
	s.reportFallback(raw)
	return now
}

// Timestamp is ParseTimestampOrNow for a post. Sorting, filtering and
// rendering re-read the same post many times, so a malformed value is
// reported once per post id and falls back to now silently afterwards.
// Posts without an id are reported every time.
func (s *Scorer) Timestamp(p domain.Post, now time.Time) time.Time {
	if t, ok := ParseTimestamp(p.CreatedAt, now); ok {
		return t
	}
	if s.firstFallback(p.ID, p.CreatedAt) {
		s.reportFallback(p.CreatedAt)
	}
	return now
}

func (s *Scorer) firstFallback(postID, raw string) bool {
	if s == nil || postID == "" {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := fallbackKey{postID: postID, raw: raw}
	if _, seen := s.reported[k]; seen {
		return false
	}
	if s.reported == nil {
		s.reported = make(map[fallbackKey]struct{})
	}
	s.reported[k] = struct{}{}
	return true
}

func (s *Scorer) reportFallback(raw string) {
	if s == nil {
		return
	}
	if s.log != nil {
		s.log.Printf("unparsable post timestamp %q, treating as now", raw)
	}
	if s.recorder != nil {
		s.recorder.TimestampFallback()
	}
}

func clampFuture(t, now time.Time) time.Time {
	if t.After(now) {
		return now
	}
	return t
}
