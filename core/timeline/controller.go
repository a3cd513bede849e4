// Package timeline buffers "new content available" signals until the user
// asks for them.
package timeline

import (
	"sync"

	"github.com/CrestNiraj12/tradefeed/domain"
)

// Controller counts pending new posts and merges buffered ones on request.
// Nothing is ever spliced into the visible list without LoadNew.
type Controller struct {
	mu       sync.Mutex
	pending  int
	buffered []domain.Post
	seen     map[string]struct{}
}

// New creates an empty Controller.
func New() *Controller {
	return &Controller{seen: make(map[string]struct{})}
}

// Merge is the outcome of LoadNew.
type Merge struct {
	Posts       []domain.Post
	Added       int
	Undelivered int // Announced via Signal without content; the caller must refetch
	ScrollToTop bool
}

// Signal announces n new posts whose content has not been delivered. n <= 0 is ignored.
func (c *Controller) Signal(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending += n
}

// Buffer holds delivered new posts and counts the ones not already buffered.
func (c *Controller) Buffer(posts ...domain.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range posts {
		if p.ID == "" {
			continue
		}
		if _, dup := c.seen[p.ID]; dup {
			continue
		}
		c.seen[p.ID] = struct{}{}
		c.buffered = append(c.buffered, p)
		c.pending++
	}
}

// PendingCount is the number shown on the "new posts" banner.
func (c *Controller) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LoadNew places buffered posts (newest first) ahead of visible, drops ids
// already visible, and resets the counter. ScrollToTop is set whenever there
// was something pending.
func (c *Controller) LoadNew(visible []domain.Post) Merge {
	c.mu.Lock()
	buffered := c.buffered
	hadPending := c.pending > 0
	undelivered := max(c.pending-len(buffered), 0)
	c.buffered = nil
	c.pending = 0
	c.seen = make(map[string]struct{})
	c.mu.Unlock()

	onScreen := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		onScreen[p.ID] = struct{}{}
	}
	out := make([]domain.Post, 0, len(buffered)+len(visible))
	added := 0
	for i := len(buffered) - 1; i >= 0; i-- {
		p := buffered[i]
		if _, dup := onScreen[p.ID]; dup {
			continue
		}
		onScreen[p.ID] = struct{}{}
		out = append(out, p)
		added++
	}
	out = append(out, visible...)
	return Merge{Posts: out, Added: added, Undelivered: undelivered, ScrollToTop: hadPending}
}
