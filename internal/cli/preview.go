package cli

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the banner in the terminal",
	Long: `Preview the resolved banner content for the local visitor.

Switch between Auto and the forced modes to compare variants. Preview
never reports events, so it won't skew your numbers.

Example:
  dxab preview`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	bannerCfg, err := banner.LoadConfig(cfg.BannerConfig)
	if err != nil {
		return err
	}

	state, closeState := openStateStore()
	defer closeState()

	engine := abtest.NewEngine(state, log)
	mode := bannerCfg.Mode()

	for {
		variant := engine.Resolve(bannerCfg.TestID, mode)
		printPreview(bannerCfg, variant, mode)

		prompt := promptui.Select{
			Label: "Preview mode",
			Items: []string{string(abtest.ModeAuto), string(abtest.ModeForceA), string(abtest.ModeForceB), "Quit"},
		}
		_, choice, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				return nil
			}
			return err
		}
		if choice == "Quit" {
			return nil
		}
		mode, _ = abtest.ParseMode(choice)
	}
}

func printPreview(bannerCfg banner.Config, variant abtest.Variant, mode abtest.Mode) {
	data := content.Resolve(cfg.SitePrefix, bannerCfg.Variant(variant), bannerCfg.ImageHeight)

	fmt.Println()
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("Test %s, variant %s (%s)\n", bannerCfg.TestID, variant, mode)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("  Image:   %s\n", data.ImageURL)
	fmt.Printf("  Style:   %s\n", data.Style)
	fmt.Printf("  Title:   %s\n", data.Title)
	fmt.Printf("  Text:    %s\n", data.Description)
	fmt.Printf("  Button:  [%s] → %s\n", data.ButtonLabel, data.ButtonURL)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println()
}
