// Package config loads process configuration from DXAB_-prefixed
// environment variables. Command flags override these where a command
// exposes them.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment  string `envconfig:"DXAB_ENVIRONMENT" default:"development"`
	Port         int    `envconfig:"DXAB_PORT" default:"8080"`
	DBPath       string `envconfig:"DXAB_DB_PATH" default:"dxab.db"`
	StateDir     string `envconfig:"DXAB_STATE_DIR" default:""`
	BannerConfig string `envconfig:"DXAB_BANNER_CONFIG" default:"banner.json"`
	AssetsDir    string `envconfig:"DXAB_ASSETS_DIR" default:"assets"`
	SitePrefix   string `envconfig:"DXAB_SITE_PREFIX" default:""`
	BeaconURL    string `envconfig:"DXAB_BEACON_URL" default:""`
	Token        string `envconfig:"DXAB_TOKEN" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
