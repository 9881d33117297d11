package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	tokenCookieName = "dxab_token"
	sessionTTL      = 24 * time.Hour
)

func (s *Server) tokenMatches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.token)) == 1
}

// authMiddleware guards the dashboard routes. A token arriving in the query
// string is exchanged for a session cookie and stripped from the URL, so it
// does not linger in the address bar. After that the cookie alone carries
// the session.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("token"); raw != "" {
			if !s.tokenMatches(raw) {
				s.log.Debug("rejected dashboard token", zap.String("path", r.URL.Path))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			s.grantSession(w, r)
			return
		}

		cookie, err := r.Cookie(tokenCookieName)
		if err != nil || !s.tokenMatches(cookie.Value) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// grantSession sets the session cookie and redirects to the same URL minus
// the token parameter.
func (s *Server) grantSession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    s.token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	})

	clean := *r.URL
	q := clean.Query()
	q.Del("token")
	clean.RawQuery = q.Encode()
	http.Redirect(w, r, clean.String(), http.StatusFound)
}
