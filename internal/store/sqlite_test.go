package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func setupTestDB(t *testing.T) *store.SQLiteStore {
	t.Helper()

	dbPath := t.TempDir() + "/test.db"
	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestCreateAndGetTest(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	created, err := s.CreateTest(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to create test: %v", err)
	}
	if created.State != store.StateRunning {
		t.Errorf("got state %s, want running", created.State)
	}

	got, err := s.GetTest(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get test: %v", err)
	}
	if got.Name != "promo1" {
		t.Errorf("got name %s, want promo1", got.Name)
	}
	if got.Winner != nil {
		t.Errorf("expected no winner, got %v", *got.Winner)
	}
}

func TestGetTestNotFound(t *testing.T) {
	s := setupTestDB(t)

	_, err := s.GetTest(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTestDuplicateName(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.CreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}
	if _, err := s.CreateTest(ctx, "promo1"); err == nil {
		t.Error("expected error creating duplicate test")
	}
}

func TestGetOrCreateTest(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	first, err := s.GetOrCreateTest(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get or create: %v", err)
	}

	second, err := s.GetOrCreateTest(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed on second get or create: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("got different ids %d and %d, want the same test", first.ID, second.ID)
	}

	tests, err := s.ListTests(ctx)
	if err != nil {
		t.Fatalf("failed to list tests: %v", err)
	}
	if len(tests) != 1 {
		t.Errorf("got %d tests, want 1", len(tests))
	}
}

func TestListTestsNewestFirst(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.CreateTest(ctx, name); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	tests, err := s.ListTests(ctx)
	if err != nil {
		t.Fatalf("failed to list tests: %v", err)
	}
	if len(tests) != 3 {
		t.Fatalf("got %d tests, want 3", len(tests))
	}
	if tests[0].Name != "third" {
		t.Errorf("got first entry %s, want third", tests[0].Name)
	}
}

func TestRecordEventDeduplicates(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}

	recorded, err := s.RecordEvent(ctx, "promo1", abtest.VariantA, abtest.ActionView, "v-1")
	if err != nil {
		t.Fatalf("failed to record event: %v", err)
	}
	if !recorded {
		t.Error("first event should be recorded")
	}

	recorded, err = s.RecordEvent(ctx, "promo1", abtest.VariantA, abtest.ActionView, "v-1")
	if err != nil {
		t.Fatalf("failed on repeat event: %v", err)
	}
	if recorded {
		t.Error("repeat event should be ignored")
	}

	stats, err := s.GetVariantStats(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats[0].Views != 1 {
		t.Errorf("got %d views for A, want 1", stats[0].Views)
	}
}

func TestRecordEventDistinctVisitorsAndActions(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}

	events := []struct {
		variant abtest.Variant
		action  abtest.Action
		visitor string
	}{
		{abtest.VariantA, abtest.ActionView, "v-1"},
		{abtest.VariantA, abtest.ActionClick, "v-1"},
		{abtest.VariantA, abtest.ActionView, "v-2"},
		{abtest.VariantB, abtest.ActionView, "v-3"},
	}
	for _, e := range events {
		if _, err := s.RecordEvent(ctx, "promo1", e.variant, e.action, e.visitor); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}

	stats, err := s.GetVariantStats(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}

	if stats[0].Variant != abtest.VariantA || stats[1].Variant != abtest.VariantB {
		t.Fatalf("unexpected variant order: %v", stats)
	}
	if stats[0].Views != 2 || stats[0].Clicks != 1 {
		t.Errorf("got A views=%d clicks=%d, want views=2 clicks=1", stats[0].Views, stats[0].Clicks)
	}
	if stats[1].Views != 1 || stats[1].Clicks != 0 {
		t.Errorf("got B views=%d clicks=%d, want views=1 clicks=0", stats[1].Views, stats[1].Clicks)
	}
}

func TestGetVariantStatsZeroFilled(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}

	stats, err := s.GetVariantStats(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d rows, want 2", len(stats))
	}
	for _, vs := range stats {
		if vs.Views != 0 || vs.Clicks != 0 {
			t.Errorf("variant %s should be zero-filled, got %+v", vs.Variant, vs)
		}
	}
}

func TestUpdateTestStateWithWinner(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.CreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}

	winner := abtest.VariantB
	if err := s.UpdateTestState(ctx, "promo1", store.StateCompleted, &winner); err != nil {
		t.Fatalf("failed to update state: %v", err)
	}

	got, err := s.GetTest(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get test: %v", err)
	}
	if got.State != store.StateCompleted {
		t.Errorf("got state %s, want completed", got.State)
	}
	if got.Winner == nil || *got.Winner != abtest.VariantB {
		t.Errorf("got winner %v, want B", got.Winner)
	}
}

func TestUpdateTestStateNotFound(t *testing.T) {
	s := setupTestDB(t)

	err := s.UpdateTestState(context.Background(), "missing", store.StatePaused, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTestRemovesEvents(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}
	if _, err := s.RecordEvent(ctx, "promo1", abtest.VariantA, abtest.ActionView, "v-1"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	if err := s.DeleteTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to delete test: %v", err)
	}

	if _, err := s.GetTest(ctx, "promo1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	events, err := s.GetEvents(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after delete, want 0", len(events))
	}
}

func TestGetEvents(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateTest(ctx, "promo1"); err != nil {
		t.Fatalf("failed to create test: %v", err)
	}
	if _, err := s.RecordEvent(ctx, "promo1", abtest.VariantB, abtest.ActionView, "v-1"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}
	if _, err := s.RecordEvent(ctx, "promo1", abtest.VariantB, abtest.ActionClick, "v-1"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	events, err := s.GetEvents(ctx, "promo1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Action != abtest.ActionClick {
		t.Errorf("got newest event %s, want Click", events[0].Action)
	}
	if events[0].Variant != abtest.VariantB {
		t.Errorf("got variant %s, want B", events[0].Variant)
	}
}

func TestSettings(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.GetSetting(ctx, "server_url"); !errors.Is(err, store.ErrNotFound) {
		t.Error("expected ErrNotFound for unset setting")
	}

	if err := s.SetSetting(ctx, "server_url", "https://ab.example.com"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := s.SetSetting(ctx, "server_url", "https://ab2.example.com"); err != nil {
		t.Fatalf("failed to update setting: %v", err)
	}

	got, err := s.GetSetting(ctx, "server_url")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if got != "https://ab2.example.com" {
		t.Errorf("got %q, want %q", got, "https://ab2.example.com")
	}
}
