package domain

import (
	"net/url"
	"strings"
)

// SortMode selects the final ordering step of the feed.
type SortMode string

const (
	ModeHot    SortMode = "hot"
	ModeRecent SortMode = "recent"
)

// ParseSortMode returns ModeHot for anything that is not "recent".
func ParseSortMode(raw string) SortMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeRecent)) {
		return ModeRecent
	}
	return ModeHot
}

// Sentinel "no filter" values. They are distinct from an absent key on the wire
// but impose the same (empty) constraint.
const (
	AllMarkets = "All"
	AllPrices  = "All"
	AllTime    = "All time"
	AllTopics  = "all"
	AllValues  = "All"
)

// Filters is the session view-state that narrows the feed. An empty string means
// the key is absent.
type Filters struct {
	Mode         SortMode
	Market       string
	Topic        string
	Facets       []string
	Sentiment    string
	Price        string
	Direction    string
	Timeframe    string
	Risk         string
	Period       string
	VerifiedOnly bool
	Query        string
}

// Values encodes the filter set for GET /posts. Absent keys are omitted;
// sentinel values are sent as-is.
func (f Filters) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(key, val)
		}
	}
	if f.Mode != "" {
		v.Set("mode", string(f.Mode))
	}
	set("market", f.Market)
	set("topic", f.Topic)
	for _, facet := range f.Facets {
		if facet = strings.TrimSpace(facet); facet != "" {
			v.Add("facet", facet)
		}
	}
	set("sentiment", f.Sentiment)
	set("price", f.Price)
	set("direction", f.Direction)
	set("timeframe", f.Timeframe)
	set("risk", f.Risk)
	set("period", f.Period)
	if f.VerifiedOnly {
		v.Set("verified", "true")
	}
	set("q", f.Query)
	return v
}

// IsNoFilter reports whether a single-valued key imposes no constraint.
func IsNoFilter(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "all", "all time":
		return true
	}
	return false
}
