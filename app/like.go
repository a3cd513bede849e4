package app

import "context"

// LikeReceipt is what the backend reports after a like mutation.
// Known is false when the response carried no count to reconcile with.
type LikeReceipt struct {
	LikesCount int
	Known      bool
}

// LikeService issues like/unlike mutations against the backend.
type LikeService interface {
	// Like marks the post as liked by the viewer.
	Like(ctx context.Context, postID string) (LikeReceipt, error)

	// Unlike removes the viewer's like.
	Unlike(ctx context.Context, postID string) (LikeReceipt, error)
}
