package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/CrestNiraj12/tradefeed/app"
)

type likeService struct {
	client *Client
}

// NewLikeService creates a LikeService backed by the given client.
func NewLikeService(client *Client) *likeService {
	return &likeService{client: client}
}

func (s *likeService) Like(ctx context.Context, postID string) (app.LikeReceipt, error) {
	data, err := s.client.Post(ctx, likePath(postID))
	if err != nil {
		return app.LikeReceipt{}, fmt.Errorf("liking post: %w", err)
	}
	return parseReceipt(data)
}

func (s *likeService) Unlike(ctx context.Context, postID string) (app.LikeReceipt, error) {
	data, err := s.client.Delete(ctx, likePath(postID))
	if err != nil {
		return app.LikeReceipt{}, fmt.Errorf("unliking post: %w", err)
	}
	return parseReceipt(data)
}

func likePath(postID string) string {
	return "/posts/" + url.PathEscape(postID) + "/like"
}

// parseReceipt reads the optional {"likes": n} body. The mutation already
// succeeded, so an empty or unreadable body only leaves the count unknown.
func parseReceipt(data []byte) (app.LikeReceipt, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return app.LikeReceipt{}, nil
	}
	var body struct {
		Likes *int `json:"likes"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return app.LikeReceipt{}, nil
	}
	if body.Likes == nil || *body.Likes < 0 {
		return app.LikeReceipt{}, nil
	}
	return app.LikeReceipt{LikesCount: *body.Likes, Known: true}, nil
}
