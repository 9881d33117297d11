package store

import (
	"context"
	"fmt"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

// Recorder adapts the store to the event sender interface, for deployments
// where the collector runs in the same process as the banner.
type Recorder struct {
	s Store
}

func NewRecorder(s Store) *Recorder {
	return &Recorder{s: s}
}

func (r *Recorder) Send(ctx context.Context, ev abtest.Event) error {
	if _, err := r.s.GetOrCreateTest(ctx, ev.TestID); err != nil {
		return fmt.Errorf("failed to resolve test: %w", err)
	}

	if _, err := r.s.RecordEvent(ctx, ev.TestID, ev.Variant, ev.Action, ev.VisitorID); err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}
