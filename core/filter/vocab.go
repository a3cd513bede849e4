package filter

import (
	"strings"
	"time"

	"github.com/CrestNiraj12/tradefeed/core/access"
	"github.com/CrestNiraj12/tradefeed/domain"
)

var (
	marketVocab    = vocab("crypto", "stocks", "forex", "commodities", "indices", "options", "futures")
	sentimentVocab = vocab("bullish", "bearish", "neutral")
	directionVocab = vocab("long", "short")
	timeframeVocab = vocab("1m", "5m", "15m", "30m", "1h", "4h", "1d", "1w", "1mo", "scalp", "intraday", "swing", "position")
	riskVocab      = vocab("low", "medium", "high")
)

const (
	priceFree = "free"
	pricePaid = "paid"

	periodToday = "today"
	periodWeek  = "this week"
	periodMonth = "this month"
	periodYear  = "this year"
)

func vocab(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// matchEnum filters on a single-valued key. Values outside the vocabulary,
// including the "All" sentinels, impose nothing.
func matchEnum(vocab map[string]struct{}, val string, field func(domain.Post) string) func(domain.Post) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	if _, ok := vocab[v]; !ok {
		return nil
	}
	return func(x domain.Post) bool {
		return strings.ToLower(strings.TrimSpace(field(x))) == v
	}
}

func matchPrice(val string) func(domain.Post) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case priceFree:
		return func(x domain.Post) bool { return !isMonetized(x) }
	case pricePaid:
		return isMonetized
	}
	return nil
}

func isMonetized(x domain.Post) bool {
	return x.PriceMinor > 0 || access.Canonicalize(x.AccessLevel) != domain.AccessPublic
}

func (p *Pipeline) matchPeriod(val string, now time.Time) func(domain.Post) bool {
	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(val)) {
	case periodToday:
		window = 24 * time.Hour
	case periodWeek:
		window = 7 * 24 * time.Hour
	case periodMonth:
		window = 30 * 24 * time.Hour
	case periodYear:
		window = 365 * 24 * time.Hour
	default:
		return nil
	}
	cutoff := now.Add(-window)
	return func(x domain.Post) bool {
		return !p.Scorer.Timestamp(x, now).Before(cutoff)
	}
}
