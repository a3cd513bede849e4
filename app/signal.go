package app

import (
	"context"

	"github.com/CrestNiraj12/tradefeed/domain"
)

// SignalSink receives "new content available" signals.
// Implemented by the timeline controller.
type SignalSink interface {
	Signal(n int)
	Buffer(posts ...domain.Post)
}

// SignalSource pushes new-content signals into a sink until ctx is done.
type SignalSource interface {
	Run(ctx context.Context, sink SignalSink) error
}
