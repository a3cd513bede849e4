package likes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/domain"
)

// gatedLikes blocks every call until the test releases it with a result.
type gatedLikes struct {
	mu      sync.Mutex
	calls   []string
	keys    []string
	started chan string
	release chan result
}

type result struct {
	receipt app.LikeReceipt
	err     error
}

func newGatedLikes() *gatedLikes {
	return &gatedLikes{started: make(chan string, 8), release: make(chan result)}
}

func (g *gatedLikes) do(ctx context.Context, call string) (app.LikeReceipt, error) {
	key, _ := app.IdempotencyKey(ctx)
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.keys = append(g.keys, key)
	g.mu.Unlock()
	g.started <- call
	r := <-g.release
	return r.receipt, r.err
}

func (g *gatedLikes) Like(ctx context.Context, id string) (app.LikeReceipt, error) {
	return g.do(ctx, "like:"+id)
}

func (g *gatedLikes) Unlike(ctx context.Context, id string) (app.LikeReceipt, error) {
	return g.do(ctx, "unlike:"+id)
}

func (g *gatedLikes) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type outcomes struct {
	mu  sync.Mutex
	got []string
}

func (o *outcomes) LikeToggle(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, outcome)
}

func startToggle(t *testing.T, s *Store, svc *gatedLikes, id string) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Toggle(context.Background(), id) }()
	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("toggle never reached the service")
	}
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("toggle never resolved")
		return nil
	}
}

func TestToggle_OptimisticThenConfirmed(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("p1", false, 10)

	done := startToggle(t, s, svc, "p1")
	st, ok := s.Get("p1")
	require.True(t, ok)
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 11, Pending: true}, st)

	svc.release <- result{}
	require.NoError(t, waitDone(t, done))
	st, _ = s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 11, Pending: false}, st)
}

func TestToggle_FailureRestoresExactSnapshot(t *testing.T) {
	svc := newGatedLikes()
	rec := &outcomes{}
	s := New(svc, WithRecorder(rec))
	s.Initialize("p1", false, 10)

	done := startToggle(t, s, svc, "p1")
	cause := errors.New("503 from backend")
	svc.release <- result{err: cause}
	err := waitDone(t, done)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLikeFailed)
	assert.ErrorIs(t, err, cause)
	st, _ := s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: false, LikesCount: 10, Pending: false}, st)
	assert.Equal(t, []string{OutcomeRolledBack}, rec.got)
}

func TestToggle_UnlikeFailureRestores(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("p1", true, 3)

	done := startToggle(t, s, svc, "p1")
	st, _ := s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: false, LikesCount: 2, Pending: true}, st)

	svc.release <- result{err: errors.New("offline")}
	require.Error(t, waitDone(t, done))
	st, _ = s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 3}, st)
	assert.Equal(t, []string{"unlike:p1"}, svc.calls)
}

func TestToggle_SecondCallWhilePendingIsIgnored(t *testing.T) {
	svc := newGatedLikes()
	rec := &outcomes{}
	s := New(svc, WithRecorder(rec))
	s.Initialize("p1", false, 10)

	var seen []int
	var mu sync.Mutex
	s.Subscribe("p1", func(_ string, st domain.LikeState) {
		mu.Lock()
		seen = append(seen, st.LikesCount)
		mu.Unlock()
	})

	done := startToggle(t, s, svc, "p1")
	require.NoError(t, s.Toggle(context.Background(), "p1"))
	st, _ := s.Get("p1")
	assert.Equal(t, 11, st.LikesCount, "ignored toggle must not move the counter")
	assert.True(t, st.Pending)

	svc.release <- result{}
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, 1, svc.callCount())
	mu.Lock()
	assert.Equal(t, []int{11, 11}, seen, "counter must never reach 12")
	mu.Unlock()
	assert.Equal(t, []string{OutcomeIgnored, OutcomeConfirmed}, rec.got)
}

func TestToggle_ServerCountReconciles(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("p1", false, 10)

	done := startToggle(t, s, svc, "p1")
	svc.release <- result{receipt: app.LikeReceipt{LikesCount: 42, Known: true}}
	require.NoError(t, waitDone(t, done))
	st, _ := s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 42}, st)
}

func TestToggle_DifferentPostsRunConcurrently(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("a", false, 0)
	s.Initialize("b", true, 5)

	doneA := startToggle(t, s, svc, "a")
	doneB := startToggle(t, s, svc, "b")
	assert.True(t, s.Pending("a"))
	assert.True(t, s.Pending("b"))

	svc.release <- result{}
	svc.release <- result{}
	require.NoError(t, waitDone(t, doneA))
	require.NoError(t, waitDone(t, doneB))
	assert.True(t, s.IsLiked("a"))
	assert.False(t, s.IsLiked("b"))
	assert.Equal(t, 2, svc.callCount())
}

func TestToggle_SharedAcrossViewsAndIdempotencyKeys(t *testing.T) {
	svc := newGatedLikes()
	keys := []string{"k1", "k2"}
	s := New(svc, WithKeyFunc(func() string {
		k := keys[0]
		keys = keys[1:]
		return k
	}))
	feedView := s.Initialize("p1", false, 1)
	detailView := s.Initialize("p1", true, 99)
	assert.Equal(t, feedView, detailView, "second initialize must not overwrite shared state")

	done := startToggle(t, s, svc, "p1")
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))
	done = startToggle(t, s, svc, "p1")
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, []string{"like:p1", "unlike:p1"}, svc.calls)
	assert.Equal(t, []string{"k1", "k2"}, svc.keys)
	st, _ := s.Get("p1")
	assert.Equal(t, domain.LikeState{IsLiked: false, LikesCount: 1}, st)
}

func TestToggle_UninitializedAndNeverNegative(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)

	done := startToggle(t, s, svc, "fresh")
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))
	st, _ := s.Get("fresh")
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 1}, st)

	s.Initialize("odd", true, 0)
	done = startToggle(t, s, svc, "odd")
	st, _ = s.Get("odd")
	assert.Equal(t, 0, st.LikesCount)
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))

	assert.ErrorIs(t, s.Toggle(context.Background(), ""), domain.ErrEmptyPostID)
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("p1", false, 0)

	var perPost, all []domain.LikeState
	unsub := s.Subscribe("p1", func(_ string, st domain.LikeState) { perPost = append(perPost, st) })
	unsubAll := s.SubscribeAll(func(_ string, st domain.LikeState) { all = append(all, st) })
	s.Subscribe("other", func(string, domain.LikeState) { t.Errorf("unrelated listener fired") })

	done := startToggle(t, s, svc, "p1")
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))

	want := []domain.LikeState{{IsLiked: true, LikesCount: 1, Pending: true}, {IsLiked: true, LikesCount: 1}}
	assert.Equal(t, want, perPost)
	assert.Equal(t, want, all)

	unsub()
	unsub()
	unsubAll()
	done = startToggle(t, s, svc, "p1")
	svc.release <- result{}
	require.NoError(t, waitDone(t, done))
	assert.Len(t, perPost, 2)
	assert.Len(t, all, 2)
}

func TestClose_TeardownSemantics(t *testing.T) {
	svc := newGatedLikes()
	s := New(svc)
	s.Initialize("p1", false, 4)

	done := startToggle(t, s, svc, "p1")
	s.Close()
	svc.release <- result{err: errors.New("late failure")}
	err := waitDone(t, done)
	assert.ErrorIs(t, err, domain.ErrLikeFailed)

	_, ok := s.Get("p1")
	assert.False(t, ok, "state must be dropped at teardown")
	assert.ErrorIs(t, s.Toggle(context.Background(), "p1"), domain.ErrStoreClosed)
}
