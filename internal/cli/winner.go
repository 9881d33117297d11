package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func init() {
	rootCmd.AddCommand(newWinnerCmd())
}

func newWinnerCmd() *cobra.Command {
	var variantFlag string

	cmd := &cobra.Command{
		Use:   "winner <testId>",
		Short: "Declare a winner for a test",
		Long: `Declare a winning variant for an A/B test and complete it.

After declaring a winner, the snippet command generates static code
showing only the winning variant (no assignment logic).

Example:
  dxab winner promo1 --variant B`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			testName := args[0]

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()
				test, err := s.GetTest(ctx, testName)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("test '%s' not found", testName)
					}
					return fmt.Errorf("failed to get test: %w", err)
				}

				if test.State != store.StateRunning {
					return fmt.Errorf("test is not running (current state: %s)", test.State)
				}

				choice := variantFlag
				if choice == "" {
					if choice, err = promptVariantChoice(); err != nil {
						return err
					}
				}

				variant, ok := abtest.ParseVariant(choice)
				if !ok {
					return fmt.Errorf("invalid variant %q (want A or B)", choice)
				}

				if err := s.UpdateTestState(ctx, testName, store.StateCompleted, &variant); err != nil {
					return fmt.Errorf("failed to set winner: %w", err)
				}

				fmt.Printf("Declared winner for test '%s': variant %s\n", testName, variant)
				fmt.Println("Test has been marked as completed.")
				fmt.Println("\nNote: Running 'snippet' will now generate static code with the winning variant only.")

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variantFlag, "variant", "v", "", "winning variant (A or B)")

	return cmd
}

func promptVariantChoice() (string, error) {
	prompt := promptui.Select{
		Label: "Winning variant",
		Items: []string{"A", "B"},
	}

	_, choice, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}
	return choice, nil
}
