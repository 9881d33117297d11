package server

import (
	"net/http"

	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
)

// Assignment cookies live for ten years, the closest a cookie gets to the
// permanent per-visitor scope.
const cookieMaxAge = 10 * 365 * 24 * 60 * 60

// cookieStore adapts one request's cookies to the kv.Store interface.
// Writes stage a Set-Cookie header and stay visible to later reads within
// the same request.
type cookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	staged map[string]string
}

func newCookieStore(w http.ResponseWriter, r *http.Request) *cookieStore {
	return &cookieStore{w: w, r: r, staged: make(map[string]string)}
}

func (c *cookieStore) Get(key string) (string, error) {
	if v, ok := c.staged[key]; ok {
		return v, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", kv.ErrNotFound
	}
	return cookie.Value, nil
}

func (c *cookieStore) Set(key, value string) error {
	c.staged[key] = value
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
