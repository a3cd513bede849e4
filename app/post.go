package app

import (
	"context"

	"github.com/CrestNiraj12/tradefeed/domain"
)

// PostService fetches feed posts from the backend.
type PostService interface {
	// FetchPosts returns posts for a tab and filter set, in backend fetch order.
	FetchPosts(ctx context.Context, tab string, filters domain.Filters, limit int) ([]domain.Post, error)
}
