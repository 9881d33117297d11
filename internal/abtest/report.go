package abtest

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

// Event is one reported visitor interaction.
type Event struct {
	TestID    string
	Variant   Variant
	Action    Action
	VisitorID string
}

// Sender delivers events to the reporting backend. The reporter calls Send
// at most once per (visitor, test, action) and never retries a failure.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

// Reporter sends each (test, action) event at most once per visitor,
// deduplicating through the store. The logged marker is written before the
// send is dispatched, so a failed send is dropped rather than retried on
// the next render or click.
type Reporter struct {
	store  kv.Store
	sender Sender
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewReporter(store kv.Store, sender Sender, log *zap.Logger) *Reporter {
	return &Reporter{store: store, sender: sender, log: log}
}

// Log reports ev unless its (test, action) pair already carries a logged
// marker for this visitor. It returns true when a send was dispatched.
// The send runs in the background; its outcome is logged and otherwise
// discarded.
func (r *Reporter) Log(ev Event) bool {
	key := LoggedKey(ev.TestID, ev.Action)
	if _, err := r.store.Get(key); err == nil {
		return false
	}

	if err := r.store.Set(key, "true"); err != nil {
		r.log.Warn("could not persist logged marker",
			zap.String("key", key),
			zap.Error(err))
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sender.Send(context.Background(), ev); err != nil {
			r.log.Warn("event send failed",
				zap.String("test", ev.TestID),
				zap.String("action", string(ev.Action)),
				zap.Error(err))
		}
	}()
	return true
}

// Flush waits for in-flight sends to finish. Callers that exit right after
// logging (CLI, server shutdown) use it to avoid dropping the last send.
func (r *Reporter) Flush() {
	r.wg.Wait()
}
