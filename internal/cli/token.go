package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

var rotateToken bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show dashboard URL with access token",
	Long: `Show the dashboard URL with your access token.

Use this when you've scrolled past the startup message or need to
share the dashboard link. The token is created on first use and kept
in your user config directory; set DXAB_TOKEN to override it.

Example:
  dxab token
  dxab token --rotate`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&rotateToken, "rotate", false, "generate a new token, invalidating the old one")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	var token string
	var err error
	switch {
	case rotateToken:
		token, err = rotateStoredToken()
	case cfg.Token != "":
		token = cfg.Token
	default:
		token, err = loadOrCreateToken()
	}
	if err != nil {
		return err
	}

	// The serve command records its URL; fall back to the configured port
	serverURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
	if s, err := store.Open(cfg.DBPath); err == nil {
		defer s.Close()
		if url, err := s.GetSetting(context.Background(), "server_url"); err == nil && url != "" {
			serverURL = url
		}
	}

	fmt.Printf("Dashboard: %s/dashboard?token=%s\n", serverURL, token)
	fmt.Println()
	fmt.Println("Tip: Bookmark this URL or run 'dxab token' anytime.")
	return nil
}

// tokenFilePath returns the path to the persisted dashboard token.
func tokenFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "dxab", "token"), nil
}

// loadOrCreateToken reads the stored token, generating one on first use.
func loadOrCreateToken() (string, error) {
	path, err := tokenFilePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	return rotateStoredToken()
}

// rotateStoredToken writes a fresh random token to the token file.
func rotateStoredToken() (string, error) {
	path, err := tokenFilePath()
	if err != nil {
		return "", err
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(b)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write token file: %w", err)
	}
	return token, nil
}
