// Package likes holds the shared, optimistic like state for every post the
// client has seen.
package likes

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/domain"
)

// Toggle outcomes reported to a Recorder.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeRolledBack = "rolled_back"
	OutcomeIgnored    = "ignored"
)

// Listener is called synchronously after every state transition of a post.
type Listener func(postID string, state domain.LikeState)

// Recorder counts toggle outcomes.
type Recorder interface {
	LikeToggle(outcome string)
}

// Logger is the subset of *log.Logger the store reports rollbacks to.
type Logger interface {
	Printf(format string, v ...any)
}

// Store is the single source of truth for like state. It is shared by every
// view of a post and outlives them: a toggle resolves into the store even if
// the view that started it is gone.
//
// A toggle for a post that already has one in flight is ignored.
type Store struct {
	svc      app.LikeService
	recorder Recorder
	log      Logger
	newKey   func() string

	mu        sync.Mutex
	closed    bool
	states    map[string]domain.LikeState
	listeners map[string]map[int]Listener // "" holds listeners for every post
	nextSub   int
}

// Option configures a Store.
type Option func(*Store)

// WithRecorder sets the outcome counter.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithLogger sets where rollbacks are reported.
func WithLogger(l Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithKeyFunc overrides idempotency key generation.
func WithKeyFunc(fn func() string) Option {
	return func(s *Store) { s.newKey = fn }
}

// New creates a Store issuing mutations through svc.
func New(svc app.LikeService, opts ...Option) *Store {
	s := &Store{
		svc:       svc,
		newKey:    func() string { return uuid.NewString() },
		states:    make(map[string]domain.LikeState),
		listeners: make(map[string]map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds state from the server's view of a post. Existing state,
// including an in-flight toggle, is left untouched.
func (s *Store) Initialize(postID string, isLiked bool, likesCount int) domain.LikeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[postID]; ok || s.closed {
		return st
	}
	st := domain.LikeState{IsLiked: isLiked, LikesCount: max(likesCount, 0)}
	s.states[postID] = st
	return st
}

// Get returns the state for a post, if it has been initialized.
func (s *Store) Get(postID string) (domain.LikeState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[postID]
	return st, ok
}

// IsLiked reports the current (possibly optimistic) liked flag.
func (s *Store) IsLiked(postID string) bool {
	st, _ := s.Get(postID)
	return st.IsLiked
}

// Pending reports whether a toggle is in flight for the post.
func (s *Store) Pending(postID string) bool {
	st, _ := s.Get(postID)
	return st.Pending
}

// Subscribe registers fn for transitions of one post.
func (s *Store) Subscribe(postID string, fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.listeners[postID]
	if !ok {
		subs = make(map[int]Listener)
		s.listeners[postID] = subs
	}
	id := s.nextSub
	s.nextSub++
	subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if subs, ok := s.listeners[postID]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(s.listeners, postID)
				}
			}
		})
	}
}

// SubscribeAll registers fn for transitions of every post.
func (s *Store) SubscribeAll(fn Listener) (unsubscribe func()) {
	return s.Subscribe("", fn)
}

// Toggle flips the like optimistically, issues the mutation and then either
// keeps the result (reconciling the count when the server reports one) or
// restores the exact pre-toggle state. The returned error wraps
// domain.ErrLikeFailed; by the time it is returned the state is already
// consistent.
func (s *Store) Toggle(ctx context.Context, postID string) error {
	if postID == "" {
		return domain.ErrEmptyPostID
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrStoreClosed
	}
	before := s.states[postID]
	if before.Pending {
		s.mu.Unlock()
		s.record(OutcomeIgnored)
		return nil
	}
	optimistic := domain.LikeState{
		IsLiked:    !before.IsLiked,
		LikesCount: before.LikesCount + 1,
		Pending:    true,
	}
	if before.IsLiked {
		optimistic.LikesCount = max(before.LikesCount-1, 0)
	}
	s.states[postID] = optimistic
	notify := s.listenersLocked(postID)
	s.mu.Unlock()
	fire(notify, postID, optimistic)

	ctx = app.WithIdempotencyKey(ctx, s.newKey())
	var (
		receipt app.LikeReceipt
		err     error
	)
	if optimistic.IsLiked {
		receipt, err = s.svc.Like(ctx, postID)
	} else {
		receipt, err = s.svc.Unlike(ctx, postID)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("%w: post %s: %w", domain.ErrLikeFailed, postID, err)
		}
		return nil
	}
	var final domain.LikeState
	if err != nil {
		final = before
	} else {
		final = domain.LikeState{IsLiked: optimistic.IsLiked, LikesCount: optimistic.LikesCount}
		if receipt.Known {
			final.LikesCount = max(receipt.LikesCount, 0)
		}
	}
	s.states[postID] = final
	notify = s.listenersLocked(postID)
	s.mu.Unlock()
	fire(notify, postID, final)

	if err != nil {
		s.record(OutcomeRolledBack)
		if s.log != nil {
			s.log.Printf("like toggle on %s rolled back: %v", postID, err)
		}
		return fmt.Errorf("%w: post %s: %w", domain.ErrLikeFailed, postID, err)
	}
	s.record(OutcomeConfirmed)
	return nil
}

// Close drops all state and listeners. Later toggles return domain.ErrStoreClosed;
// toggles already in flight resolve without touching state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.states = make(map[string]domain.LikeState)
	s.listeners = make(map[string]map[int]Listener)
}

func (s *Store) listenersLocked(postID string) []Listener {
	out := make([]Listener, 0, len(s.listeners[postID])+len(s.listeners[""]))
	for _, fn := range s.listeners[postID] {
		out = append(out, fn)
	}
	if postID != "" {
		for _, fn := range s.listeners[""] {
			out = append(out, fn)
		}
	}
	return out
}

func (s *Store) record(outcome string) {
	if s.recorder != nil {
		s.recorder.LikeToggle(outcome)
	}
}

func fire(listeners []Listener, postID string, st domain.LikeState) {
	for _, fn := range listeners {
		fn(postID, st)
	}
}
