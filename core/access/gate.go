// Package access decides whether a post's content may be shown to a viewer.
package access

import (
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/tradefeed/domain"
)

// PreviewLimit bounds how many runes of a locked post may reach the renderer.
const PreviewLimit = 140

// UnlockAction is what the viewer could do to open a locked post.
type UnlockAction string

const (
	UnlockNone      UnlockAction = ""
	UnlockPurchase  UnlockAction = "purchase"
	UnlockSubscribe UnlockAction = "subscribe"
	UnlockFollow    UnlockAction = "follow"
)

// Viewer is the current user plus relationship changes made since posts were fetched.
type Viewer struct {
	ID           string
	Purchased    map[string]bool // by post id
	SubscribedTo map[string]bool // by author id
	Following    map[string]bool // by author id
}

// Decision is derived on every call and must not be cached.
type Decision struct {
	Locked     bool
	Unlock     UnlockAction
	Level      domain.AccessLevel
	PriceMinor int64
}

var aliases = map[string]domain.AccessLevel{
	"":              domain.AccessPublic,
	"public":        domain.AccessPublic,
	"free":          domain.AccessPublic,
	"open":          domain.AccessPublic,
	"everyone":      domain.AccessPublic,
	"paid":          domain.AccessPaid,
	"ppv":           domain.AccessPaid,
	"purchase":      domain.AccessPaid,
	"onetime":       domain.AccessPaid,
	"payperview":    domain.AccessPaid,
	"subscriber":    domain.AccessSubscribers,
	"subscribers":   domain.AccessSubscribers,
	"subscription":  domain.AccessSubscribers,
	"subs":          domain.AccessSubscribers,
	"members":       domain.AccessSubscribers,
	"premium":       domain.AccessPremium,
	"pro":           domain.AccessPremium,
	"vip":           domain.AccessPremium,
	"follower":      domain.AccessFollowers,
	"followers":     domain.AccessFollowers,
	"followersonly": domain.AccessFollowers,
}

// Canonicalize maps backend spellings ("Paid", "followers-only", "PPV") onto
// the canonical levels. Anything unrecognized is AccessUnknown.
func Canonicalize(raw string) domain.AccessLevel {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(raw)))
	if lvl, ok := aliases[key]; ok {
		return lvl
	}
	return domain.AccessUnknown
}

// Decide applies the access table; the first matching rule wins.
func Decide(p domain.Post, v Viewer) Decision {
	lvl := Canonicalize(p.AccessLevel)
	d := Decision{Level: lvl, PriceMinor: p.PriceMinor}

	own := p.IsOwnPost || (v.ID != "" && v.ID == p.AuthorID)
	purchased := p.IsPurchased || v.Purchased[p.ID]
	subscriber := p.IsSubscriber || v.SubscribedTo[p.AuthorID]
	follower := p.IsFollower || v.Following[p.AuthorID]

	switch {
	case own:
		return d
	case lvl == domain.AccessPublic:
		return d
	case lvl == domain.AccessPaid && purchased:
		return d
	case (lvl == domain.AccessSubscribers || lvl == domain.AccessPremium) && subscriber:
		return d
	case lvl == domain.AccessFollowers && follower:
		return d
	}

	d.Locked = true
	switch lvl {
	case domain.AccessPaid:
		d.Unlock = UnlockPurchase
	case domain.AccessSubscribers, domain.AccessPremium:
		d.Unlock = UnlockSubscribe
	case domain.AccessFollowers:
		d.Unlock = UnlockFollow
	}
	return d
}

// Redact returns the post as it may be handed to a renderer. Locked posts lose
// their body and keep at most PreviewLimit runes of preview.
func Redact(p domain.Post, d Decision) domain.Post {
	if !d.Locked {
		return p
	}
	p.Body = ""
	if utf8.RuneCountInString(p.Preview) > PreviewLimit {
		p.Preview = string([]rune(p.Preview)[:PreviewLimit])
	}
	return p
}
