package timeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/tradefeed/domain"
)

func ids(posts []domain.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSignal_AccumulatesAndLoadNewResets(t *testing.T) {
	c := New()
	for _, n := range []int{1, 2, 1} {
		c.Signal(n)
	}
	require.Equal(t, 4, c.PendingCount())

	visible := []domain.Post{{ID: "a"}, {ID: "b"}}
	m := c.LoadNew(visible)
	assert.Equal(t, 0, c.PendingCount())
	assert.True(t, m.ScrollToTop)
	assert.Equal(t, 4, m.Undelivered)
	assert.Equal(t, []string{"a", "b"}, ids(m.Posts))

	m = c.LoadNew(visible)
	assert.Equal(t, 0, c.PendingCount(), "counter must never go negative")
	assert.False(t, m.ScrollToTop)
}

func TestSignal_IgnoresNonPositive(t *testing.T) {
	c := New()
	c.Signal(0)
	c.Signal(-3)
	assert.Equal(t, 0, c.PendingCount())
}

func TestBuffer_MergesNewestFirstWithoutDuplicates(t *testing.T) {
	c := New()
	c.Buffer(domain.Post{ID: "n1"}, domain.Post{ID: "n2"})
	c.Buffer(domain.Post{ID: "n2"}, domain.Post{ID: "a"}, domain.Post{})
	assert.Equal(t, 3, c.PendingCount())

	assert.Len(t, c.LoadNew(nil).Posts, 3, "sanity")
	c.Buffer(domain.Post{ID: "n1"}, domain.Post{ID: "n2"}, domain.Post{ID: "a"})

	m := c.LoadNew([]domain.Post{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, []string{"n2", "n1", "a", "b"}, ids(m.Posts))
	assert.Equal(t, 2, m.Added)
	assert.Equal(t, 0, m.Undelivered, "buffered duplicates are delivered, not missing")
	assert.Equal(t, 0, c.PendingCount())
}

func TestLoadNew_MixedSignalsAndPosts(t *testing.T) {
	c := New()
	c.Signal(2)
	c.Buffer(domain.Post{ID: "n1"})
	m := c.LoadNew(nil)
	assert.Equal(t, 1, m.Added)
	assert.Equal(t, 2, m.Undelivered)
}

func TestSignal_ConcurrentProducers(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Signal(2)
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.PendingCount())
}
