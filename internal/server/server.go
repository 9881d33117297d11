// Package server hosts the banner delivery endpoints, the beacon
// collector, and the results dashboard on one mux. Banner routes build a
// per-request component over the visitor's cookies, so the browser carries
// the assignment and dedup state.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/beacon"
	"github.com/dxforce-site/abTestHeroBanner/internal/config"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

type Server struct {
	store     store.Store
	holder    *banner.Holder
	cfg       *config.Config
	log       *zap.Logger
	token     string
	sender    abtest.Sender
	router    *http.ServeMux
	startTime time.Time
}

// New wires the server. Events go to the configured collector URL when one
// is set, otherwise straight into the local store.
func New(st store.Store, holder *banner.Holder, cfg *config.Config, log *zap.Logger) *Server {
	srv := &Server{
		store:     st,
		holder:    holder,
		cfg:       cfg,
		log:       log,
		token:     cfg.Token,
		router:    http.NewServeMux(),
		startTime: time.Now(),
	}

	if srv.token == "" {
		srv.token = generateToken()
	}

	if cfg.BeaconURL != "" {
		srv.sender = beacon.New(cfg.BeaconURL)
	} else {
		srv.sender = store.NewRecorder(st)
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	// Public endpoints
	s.router.HandleFunc("/banner", s.handleBanner)
	s.router.HandleFunc("/api/banner", s.handleBannerAPI)
	s.router.HandleFunc("/go", s.handleGo)
	s.router.HandleFunc("/b", s.handleBeacon)
	s.router.HandleFunc("/embed.js", s.handleEmbedJS)
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.AssetsDir))))

	// Dashboard endpoints (protected)
	s.router.Handle("/dashboard", s.authMiddleware(http.HandlerFunc(s.handleDashboard)))
	s.router.Handle("/api/preview", s.authMiddleware(http.HandlerFunc(s.handlePreview)))
}

// Start serves until ctx is cancelled, then shuts down gracefully. Active
// handlers finish their in-flight event sends before Shutdown returns.
func (s *Server) Start(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.log.Info("server listening",
		zap.Int("port", s.cfg.Port),
		zap.String("dashboard", fmt.Sprintf("http://localhost:%d/dashboard?token=%s", s.cfg.Port, s.token)))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) Token() string {
	return s.token
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// newComponent builds the per-request banner component over the caller's
// cookies. Handlers must finish resolving and reporting before writing the
// response body, so the staged Set-Cookie headers make it out.
func (s *Server) newComponent(w http.ResponseWriter, r *http.Request) *banner.Component {
	return banner.New(s.holder.Config(), s.cfg.SitePrefix, newCookieStore(w, r), s.sender, s.log)
}

func generateToken() string {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a simple token if crypto/rand fails
		return "a1b2c3d4"
	}
	return hex.EncodeToString(bytes)
}
