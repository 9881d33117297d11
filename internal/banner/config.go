package banner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
)

// Config is the authored banner configuration, usually loaded from a JSON
// file. PreviewMode holds one of "Auto", "Force A", "Force B"; anything
// else reads as Auto.
type Config struct {
	TestID      string                 `json:"testId"`
	PreviewMode string                 `json:"previewMode,omitempty"`
	ImageHeight int                    `json:"imageHeight,omitempty"`
	VariantA    content.VariantContent `json:"variantA"`
	VariantB    content.VariantContent `json:"variantB"`
}

// Mode returns the parsed preview mode, defaulting to Auto.
func (c Config) Mode() abtest.Mode {
	if m, ok := abtest.ParseMode(c.PreviewMode); ok {
		return m
	}
	return abtest.ModeAuto
}

// Variant returns the authored bundle for v.
func (c Config) Variant(v abtest.Variant) content.VariantContent {
	if v == abtest.VariantB {
		return c.VariantB
	}
	return c.VariantA
}

// LoadConfig reads and parses a banner configuration file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read banner config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse banner config %s: %w", path, err)
	}
	return cfg, nil
}

// Holder shares one banner configuration between goroutines. Preview mode
// can be overridden at runtime; a Swap (config reload) replaces the
// override along with everything else.
type Holder struct {
	mu  sync.RWMutex
	cfg Config
}

func NewHolder(cfg Config) *Holder {
	return &Holder{cfg: cfg}
}

// Config returns the current configuration.
func (h *Holder) Config() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Swap replaces the configuration.
func (h *Holder) Swap(cfg Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

// SetPreviewMode overrides the preview mode until the next Swap.
func (h *Holder) SetPreviewMode(mode abtest.Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg.PreviewMode = string(mode)
}
