package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <testId>",
		Short: "Register a new A/B test",
		Long: `Register a new A/B test in the collector.

Banner tests always run two variants, A and B. The beacon endpoint
registers unknown tests on first contact, so this is only needed when
you want the test to show up on the dashboard before traffic arrives.

Example:
  dxab create promo1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return withStore(func(s *store.SQLiteStore) error {
				test, err := s.CreateTest(context.Background(), name)
				if err != nil {
					return fmt.Errorf("failed to create test: %w", err)
				}

				fmt.Printf("Created test '%s' (variants A and B)\n", test.Name)
				return nil
			})
		},
	}
}
