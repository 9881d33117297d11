package store

import (
	"time"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

type TestState string

const (
	StateRunning   TestState = "running"
	StatePaused    TestState = "paused"
	StateCompleted TestState = "completed"
)

// Test is one registered banner experiment. Variants are fixed at A and B;
// Winner is set when the test completes.
type Test struct {
	ID        int64
	Name      string
	State     TestState
	Winner    *abtest.Variant
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Event is one recorded beacon hit.
type Event struct {
	ID        int64
	TestName  string
	Variant   abtest.Variant
	Action    abtest.Action
	VisitorID string
	CreatedAt time.Time
}

// VariantStats counts distinct visitors per action for one variant.
type VariantStats struct {
	Variant abtest.Variant
	Views   int
	Clicks  int
}
