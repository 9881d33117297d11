package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/snippets"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func init() {
	rootCmd.AddCommand(newSnippetCmd())
}

func newSnippetCmd() *cobra.Command {
	var framework string
	var serverURL string

	cmd := &cobra.Command{
		Use:   "snippet [testId]",
		Short: "Generate integration code for the banner",
		Long: `Generate copy-paste-ready code for embedding the banner in your site.

The test id defaults to the one in the banner config. Once the test
has a declared winner, the output is static markup for the winning
variant instead of the live embed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bannerCfg, err := banner.LoadConfig(cfg.BannerConfig)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				bannerCfg.TestID = args[0]
			}

			fw := snippets.Framework(framework)
			if framework == "" {
				if fw, err = promptFramework(); err != nil {
					return err
				}
			}

			url := serverURL
			if url == "" {
				if url, err = promptServerURL(); err != nil {
					return err
				}
			}

			sc := snippets.Config{
				ServerURL: url,
				Banner:    bannerCfg,
			}

			if bannerCfg.TestID != "" {
				err := withStore(func(s *store.SQLiteStore) error {
					test, err := s.GetTest(context.Background(), bannerCfg.TestID)
					if err != nil {
						if errors.Is(err, store.ErrNotFound) {
							return nil
						}
						return err
					}
					if test.State == store.StateCompleted && test.Winner != nil {
						sc.Winner = test.Winner
					}
					return nil
				})
				if err != nil {
					return fmt.Errorf("failed to check for winner: %w", err)
				}
			}

			files, err := snippets.Generate(fw, sc)
			if err != nil {
				return fmt.Errorf("failed to generate snippet: %w", err)
			}

			printSnippets(files)
			return nil
		},
	}

	cmd.Flags().StringVarP(&framework, "framework", "f", "", "framework (script, iframe, react)")
	cmd.Flags().StringVarP(&serverURL, "server-url", "s", "", "server URL (e.g., https://banners.example.com)")

	return cmd
}

func promptFramework() (snippets.Framework, error) {
	frameworks := []struct {
		Name      string
		Framework snippets.Framework
	}{
		{"Script tag (drop-in embed)", snippets.FrameworkScript},
		{"Iframe", snippets.FrameworkIframe},
		{"React", snippets.FrameworkReact},
	}

	items := make([]string, len(frameworks))
	for i, f := range frameworks {
		items[i] = f.Name
	}

	prompt := promptui.Select{
		Label: "Select framework",
		Items: items,
		Size:  3,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return frameworks[idx].Framework, nil
}

func promptServerURL() (string, error) {
	defaultURL := fmt.Sprintf("http://localhost:%d", cfg.Port)

	prompt := promptui.Prompt{
		Label:   "Server URL",
		Default: defaultURL,
	}

	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return strings.TrimRight(result, "/"), nil
}

func printSnippets(files []snippets.SnippetFile) {
	for i, file := range files {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(strings.Repeat("=", 62))
		fmt.Printf(" %s\n", file.Filename)
		fmt.Println(strings.Repeat("=", 62))
		fmt.Println()
		fmt.Println(file.Content)
	}
}
