package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/tradefeed/domain"
)

type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the given client.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

// FetchPosts requests GET /posts with the filter set encoded 1:1.
func (s *postService) FetchPosts(ctx context.Context, tab string, filters domain.Filters, limit int) ([]domain.Post, error) {
	q := filters.Values()
	if tab != "" {
		q.Set("tab", tab)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/posts"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	return decodePosts(data)
}

func decodePosts(data []byte) ([]domain.Post, error) {
	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parsing posts: %w", err)
	}
	return normalizePosts(posts), nil
}

// normalizePosts folds backend type tags onto the closed set and strips
// terminal control sequences from free text. Posts without an id are dropped.
func normalizePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		p.Type = domain.ParseContentType(string(p.Type))
		p.Author = sanitizeForTerminal(p.Author)
		p.Title = sanitizeForTerminal(p.Title)
		p.Body = sanitizeForTerminal(p.Body)
		p.Preview = sanitizeForTerminal(p.Preview)
		out = append(out, p)
	}
	return out
}
