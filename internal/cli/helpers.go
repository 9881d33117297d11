package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

// withStore opens the collector database, executes the function, and
// handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// openStateStore opens the local visitor state. With no state dir
// configured, or when the dir cannot be opened, it runs in memory, so
// assignments last for one command only.
func openStateStore() (kv.Store, func()) {
	if cfg.StateDir == "" {
		log.Warn("no state dir configured, assignments will not persist across runs")
	}

	db, err := kv.OpenBadger(cfg.StateDir)
	if err != nil {
		log.Warn("state store unavailable, falling back to memory", zap.Error(err))
		return kv.NewMemory(), func() {}
	}
	return db, func() { db.Close() }
}
