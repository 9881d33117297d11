package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dxforce-site/abTestHeroBanner/internal/config"
	"github.com/dxforce-site/abTestHeroBanner/internal/logger"
)

var (
	cfg *config.Config
	log *zap.Logger

	flagDB           string
	flagBannerConfig string
	flagStateDir     string
	flagAssets       string
)

var rootCmd = &cobra.Command{
	Use:   "dxab",
	Short: "DXFORCE hero banner A/B testing",
	Long: `dxab runs the DXFORCE hero banner A/B test stack: variant
assignment, event collection, and live results. Single Go binary,
embedded SQLite.

Running without a subcommand starts the server (same as 'dxab serve').`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// Flags override the environment
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		if flagBannerConfig != "" {
			cfg.BannerConfig = flagBannerConfig
		}
		if flagStateDir != "" {
			cfg.StateDir = flagStateDir
		}
		if flagAssets != "" {
			cfg.AssetsDir = flagAssets
		}

		log, err = logger.New(cfg.Environment)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe, // Default action is to start the server
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "collector database path (overrides DXAB_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagBannerConfig, "config", "", "banner config path (overrides DXAB_BANNER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "local visitor state dir (overrides DXAB_STATE_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "banner assets dir (overrides DXAB_ASSETS_DIR)")
}
