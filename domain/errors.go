package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLikeFailed wraps a like/unlike request that was rolled back.
	ErrLikeFailed = errors.New("like request failed")

	// ErrStoreClosed is returned by a like store after teardown.
	ErrStoreClosed = errors.New("like store closed")

	// ErrEmptyPostID indicates a mutation was requested without a post id.
	ErrEmptyPostID = errors.New("post id cannot be empty")
)
