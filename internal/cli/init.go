package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/banner"
	"github.com/dxforce-site/abTestHeroBanner/internal/content"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a banner config interactively",
	Long: `Create a banner configuration file interactively.

The wizard asks for a test id and the content of both variants, then
writes the config file the server loads. Drop image files into the
assets directory and reference them by filename.

Example:
  dxab init`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfg.BannerConfig); err == nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s exists, overwrite", cfg.BannerConfig),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			if err == promptui.ErrInterrupt {
				os.Exit(0)
			}
			fmt.Println("Keeping existing config.")
			return nil
		}
	}

	testID, err := promptString("Test id", "promo1")
	if err != nil {
		return err
	}

	heightStr, err := promptString("Image height (px)", strconv.Itoa(content.DefaultHeight))
	if err != nil {
		return err
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil {
		return fmt.Errorf("invalid height %q: %w", heightStr, err)
	}

	variantA, err := promptVariant("A")
	if err != nil {
		return err
	}
	variantB, err := promptVariant("B")
	if err != nil {
		return err
	}

	bannerCfg := banner.Config{
		TestID:      testID,
		ImageHeight: height,
		VariantA:    variantA,
		VariantB:    variantB,
	}

	data, err := json.MarshalIndent(bannerCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(cfg.BannerConfig, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println()
	fmt.Printf("Wrote %s\n", cfg.BannerConfig)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Copy your images into %s/\n", cfg.AssetsDir)
	fmt.Printf("  2. Create the test:  dxab create %s\n", testID)
	fmt.Println("  3. Start the server: dxab serve")
	return nil
}

func promptString(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	value, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}
	return value, nil
}

func promptVariant(name string) (content.VariantContent, error) {
	fmt.Printf("\nVariant %s\n", name)

	var vc content.VariantContent

	imageKey, err := promptString("Image asset (filename)", "")
	if err != nil {
		return vc, err
	}
	if imageKey != "" {
		vc.Image = map[string]any{"contentKey": imageKey}
	}

	if vc.Position, err = promptString("Image position", content.DefaultPosition); err != nil {
		return vc, err
	}
	if vc.Title, err = promptString("Title", ""); err != nil {
		return vc, err
	}
	if vc.Description, err = promptString("Description", ""); err != nil {
		return vc, err
	}
	if vc.ButtonLabel, err = promptString("Button label", ""); err != nil {
		return vc, err
	}
	if vc.ButtonURL, err = promptString("Button URL", ""); err != nil {
		return vc, err
	}
	return vc, nil
}
