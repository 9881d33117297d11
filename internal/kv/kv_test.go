package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

func TestMemoryGetMissing(t *testing.T) {
	s := kv.NewMemory()

	_, err := s.Get("AB_TEST_ASSIGNMENT_promo1")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestMemoryRoundTrip(t *testing.T) {
	s := kv.NewMemory()

	require.NoError(t, s.Set("DXFORCE_VISITOR_ID", "abc-123"))

	got, err := s.Get("DXFORCE_VISITOR_ID")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got)
}

func TestMemoryOverwrite(t *testing.T) {
	s := kv.NewMemory()

	require.NoError(t, s.Set("k", "first"))
	require.NoError(t, s.Set("k", "second"))

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestMemorySnapshot(t *testing.T) {
	s := kv.NewMemory()
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	snap := s.Snapshot()
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, snap)

	// Mutating the snapshot must not touch the store.
	snap["a"] = "changed"
	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
