package store

import (
	"context"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

// Store defines the collector's persistence operations.
type Store interface {
	// Test operations
	CreateTest(ctx context.Context, name string) (*Test, error)
	GetTest(ctx context.Context, name string) (*Test, error)
	GetOrCreateTest(ctx context.Context, name string) (*Test, error)
	ListTests(ctx context.Context) ([]*Test, error)
	UpdateTestState(ctx context.Context, name string, state TestState, winner *abtest.Variant) error
	DeleteTest(ctx context.Context, name string) error

	// Event operations. RecordEvent reports whether the event was new for
	// its (test, visitor, action) triple.
	RecordEvent(ctx context.Context, testName string, variant abtest.Variant, action abtest.Action, visitorID string) (bool, error)
	GetVariantStats(ctx context.Context, testName string) ([]VariantStats, error)
	GetEvents(ctx context.Context, testName string) ([]*Event, error)

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}
