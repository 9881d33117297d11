package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

func openBadger(t *testing.T, dir string) *kv.Badger {
	t.Helper()

	s, err := kv.OpenBadger(dir)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestBadgerInMemoryRoundTrip(t *testing.T) {
	s := openBadger(t, "")

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set("AB_LOGGED_promo1_View", "true"))

	got, err := s.Get("AB_LOGGED_promo1_View")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := kv.OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("AB_TEST_ASSIGNMENT_promo1", "B"))
	require.NoError(t, s.Close())

	reopened := openBadger(t, dir)
	got, err := reopened.Get("AB_TEST_ASSIGNMENT_promo1")
	require.NoError(t, err)
	assert.Equal(t, "B", got)
}

func TestBadgerOverwrite(t *testing.T) {
	s := openBadger(t, "")

	require.NoError(t, s.Set("k", "A"))
	require.NoError(t, s.Set("k", "B"))

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "B", got)
}
