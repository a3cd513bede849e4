package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/infra/auth"
)

const (
	frameNewPosts = "new_posts"

	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Logger is the subset of *log.Logger the stream reports through.
type Logger interface {
	Printf(format string, v ...any)
}

// SignalRecorder counts announced posts.
type SignalRecorder interface {
	NewPosts(n int)
}

type frame struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Posts json.RawMessage `json:"posts,omitempty"`
}

// Stream subscribes to the backend push channel and forwards "new posts"
// frames to a SignalSink. It reconnects with capped exponential backoff
// until its context ends.
type Stream struct {
	url           string
	tokenProvider auth.TokenProvider
	dialer        *websocket.Dialer
	logger        Logger
	recorder      SignalRecorder
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithStreamLogger routes connection errors to l.
func WithStreamLogger(l Logger) StreamOption {
	return func(s *Stream) { s.logger = l }
}

// WithSignalRecorder counts every announced post on r.
func WithSignalRecorder(r SignalRecorder) StreamOption {
	return func(s *Stream) { s.recorder = r }
}

// NewStream derives the ws(s)://…/stream endpoint from the API base URL.
func NewStream(baseURL string, tp auth.TokenProvider, opts ...StreamOption) (*Stream, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing stream url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported stream scheme %q", u.Scheme)
	}
	u.Path += "/stream"

	s := &Stream{
		url:           u.String(),
		tokenProvider: tp,
		dialer:        websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run blocks until ctx is done. Connection failures are logged and retried.
func (s *Stream) Run(ctx context.Context, sink app.SignalSink) error {
	backoff := minBackoff
	for {
		connected, err := s.session(ctx, sink)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			backoff = minBackoff
		}
		if err != nil && s.logger != nil {
			s.logger.Printf("stream: %v (retrying in %s)", err, backoff)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *Stream) session(ctx context.Context, sink app.SignalSink) (bool, error) {
	header, err := requestHeaders(ctx, s.tokenProvider)
	if err != nil {
		return false, err
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return false, fmt.Errorf("dialing %s: %w", s.url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true, nil
			}
			return true, fmt.Errorf("reading frame: %w", err)
		}
		if err := s.dispatch(data, sink); err != nil && s.logger != nil {
			s.logger.Printf("stream: %v", err)
		}
	}
}

// dispatch applies one frame. Unknown frame types are ignored.
func (s *Stream) dispatch(data []byte, sink app.SignalSink) error {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	if f.Type != frameNewPosts {
		return nil
	}

	var posts []domain.Post
	if len(f.Posts) > 0 {
		decoded, err := decodePosts(f.Posts)
		if err != nil {
			return err
		}
		posts = decoded
	}

	announced := max(f.Count, len(posts))
	if announced == 0 {
		return errors.New("new_posts frame without count or posts")
	}
	if len(posts) > 0 {
		sink.Buffer(posts...)
	}
	if extra := announced - len(posts); extra > 0 {
		sink.Signal(extra)
	}
	if s.recorder != nil {
		s.recorder.NewPosts(announced)
	}
	return nil
}
