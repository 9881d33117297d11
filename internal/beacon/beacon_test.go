package beacon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/beacon"
)

func TestSendPostsCompactPayload(t *testing.T) {
	var got map[string]string
	var method, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := beacon.New(srv.URL + "/b")
	err := client.Send(context.Background(), abtest.Event{
		TestID:    "promo1",
		Variant:   abtest.VariantB,
		Action:    abtest.ActionView,
		VisitorID: "v-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{
		"t":   "promo1",
		"v":   "B",
		"e":   "View",
		"vid": "v-1",
	}, got)
}

func TestSendRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := beacon.New(srv.URL + "/b")
	err := client.Send(context.Background(), abtest.Event{TestID: "promo1", Variant: abtest.VariantA, Action: abtest.ActionClick, VisitorID: "v-1"})
	assert.ErrorContains(t, err, "status 400")
}

func TestSendUnreachableCollector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := beacon.New(srv.URL + "/b")
	err := client.Send(context.Background(), abtest.Event{TestID: "promo1", Variant: abtest.VariantA, Action: abtest.ActionView, VisitorID: "v-1"})
	assert.Error(t, err)
}
