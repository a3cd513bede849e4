package domain

// AccessLevel is the canonical monetization tier gating a post.
type AccessLevel string

const (
	AccessPublic      AccessLevel = "public"
	AccessPaid        AccessLevel = "paid"
	AccessSubscribers AccessLevel = "subscribers"
	AccessPremium     AccessLevel = "premium"
	AccessFollowers   AccessLevel = "followers"
	AccessUnknown     AccessLevel = "unknown"
)
