package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/server"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the banner server",
	Long: `Start the hero banner server.

The server provides:
  - The banner page, banner API, and drop-in embed script
  - Beacon endpoint for collecting events
  - Dashboard for viewing results and switching the live preview

The banner config reloads automatically when the file changes.

Example:
  dxab serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides DXAB_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != 0 {
		cfg.Port = servePort
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	serverURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	if err := s.SetSetting(context.Background(), "server_url", serverURL); err != nil {
		log.Warn("could not record server url", zap.Error(err))
	}

	bannerCfg, err := banner.LoadConfig(cfg.BannerConfig)
	if err != nil {
		log.Warn("banner config not loaded, starting with an empty banner",
			zap.String("path", cfg.BannerConfig),
			zap.Error(err))
	}
	holder := banner.NewHolder(bannerCfg)

	if cfg.Token == "" {
		token, err := loadOrCreateToken()
		if err != nil {
			return fmt.Errorf("failed to prepare dashboard token: %w", err)
		}
		cfg.Token = token
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live-reload the banner config while serving
	go func() {
		if err := banner.Watch(ctx, cfg.BannerConfig, log, holder.Swap); err != nil {
			log.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	srv := server.New(s, holder, cfg, log)
	return srv.Start(ctx)
}
