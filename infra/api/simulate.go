package api

import (
	"context"
	"time"

	"github.com/CrestNiraj12/tradefeed/app"
)

// Ticker announces one new post every interval. It stands in for the push
// channel in demos and offline sessions.
type Ticker struct {
	Interval time.Duration
	Recorder SignalRecorder
}

// Run blocks until ctx is done.
func (t Ticker) Run(ctx context.Context, sink app.SignalSink) error {
	if t.Interval <= 0 {
		<-ctx.Done()
		return nil
	}
	tick := time.NewTicker(t.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			sink.Signal(1)
			if t.Recorder != nil {
				t.Recorder.NewPosts(1)
			}
		}
	}
}
