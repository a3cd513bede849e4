package domain

import "strings"

// ContentType is the closed set of post kinds the feed partitions on.
type ContentType string

const (
	TypeSignal    ContentType = "signal"
	TypeNews      ContentType = "news"
	TypeAnalysis  ContentType = "analysis"
	TypeCode      ContentType = "code"
	TypeEducation ContentType = "education"
	TypeMacro     ContentType = "macro"
	TypeVideo     ContentType = "video"
	TypeGeneral   ContentType = "general"
)

// ContentTypes lists every content type in display order.
var ContentTypes = []ContentType{
	TypeSignal, TypeNews, TypeAnalysis, TypeCode,
	TypeEducation, TypeMacro, TypeVideo, TypeGeneral,
}

// ParseContentType maps a backend tag onto the closed set. Unknown tags are general.
func ParseContentType(raw string) ContentType {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "signals":
		return TypeSignal
	case "educational":
		return TypeEducation
	case "videos":
		return TypeVideo
	}
	for _, t := range ContentTypes {
		if string(t) == v {
			return t
		}
	}
	return TypeGeneral
}

// Metrics holds the raw engagement counters reported by the backend.
type Metrics struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Reposts  int `json:"reposts"`
	Views    int `json:"views"`
}

// Post is an immutable snapshot of a feed item as fetched from the backend.
// Only the like counter is ever mutated locally, and only through the like store.
type Post struct {
	ID             string      `json:"id"`
	AuthorID       string      `json:"authorId"`
	Author         string      `json:"author"`
	AuthorVerified bool        `json:"authorVerified"`
	CreatedAt      string      `json:"createdAt"` // Raw: "2h ago" or an absolute timestamp
	Type           ContentType `json:"type"`
	Market         string      `json:"market"`
	Topic          string      `json:"topic"`
	Tags           []string    `json:"tags,omitempty"`

	Ticker    string `json:"ticker,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
	Risk      string `json:"risk,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	Direction string `json:"direction,omitempty"`

	Title   string `json:"title"`
	Body    string `json:"body"`
	Preview string `json:"preview,omitempty"`

	AccessLevel string `json:"accessLevel,omitempty"`
	PriceMinor  int64  `json:"price,omitempty"` // Minor currency units
	Currency    string `json:"currency,omitempty"`

	IsPurchased  bool `json:"isPurchased"`
	IsSubscriber bool `json:"isSubscriber"`
	IsFollower   bool `json:"isFollower"`
	IsOwnPost    bool `json:"isOwnPost"`
	IsLiked      bool `json:"isLiked"`

	Metrics Metrics `json:"metrics"`
}

// LikeState is the locally tracked like affordance for one post id.
type LikeState struct {
	IsLiked    bool
	LikesCount int
	Pending    bool
}
