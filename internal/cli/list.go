package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tests",
	Long:  `List all A/B tests with their state and totals.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		tests, err := s.ListTests(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tests: %w", err)
		}

		if len(tests) == 0 {
			fmt.Println("No tests yet.")
			fmt.Println()
			fmt.Println("Tests auto-create when visitors arrive, or register one yourself:")
			fmt.Println("  dxab create <testId>")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATE\tWINNER\tVIEWS\tCLICKS\tCREATED")

		for _, test := range tests {
			stats, err := s.GetVariantStats(ctx, test.Name)
			if err != nil {
				return fmt.Errorf("failed to get stats for test %s: %w", test.Name, err)
			}

			totalViews := 0
			totalClicks := 0
			for _, stat := range stats {
				totalViews += stat.Views
				totalClicks += stat.Clicks
			}

			winner := "-"
			if test.Winner != nil {
				winner = string(*test.Winner)
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				test.Name,
				strings.ToUpper(string(test.State)),
				winner,
				formatNumber(totalViews),
				formatNumber(totalClicks),
				test.CreatedAt.Format("2006-01-02"),
			)
		}

		w.Flush()
		return nil
	})
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
