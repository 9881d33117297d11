package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/stats"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results <testId>",
	Short: "Show detailed results for a test",
	Long:  `Show detailed results including click rates and confidence intervals.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	name := args[0]

	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		test, err := s.GetTest(ctx, name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("test '%s' not found", name)
			}
			return fmt.Errorf("failed to get test: %w", err)
		}

		variantStats, err := s.GetVariantStats(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		result := stats.Analyze(variantStats)

		fmt.Printf("TEST: %s\n", test.Name)
		fmt.Printf("STATE: %s\n", test.State)
		if test.Winner != nil {
			fmt.Printf("WINNER: %s\n", *test.Winner)
		}
		fmt.Printf("CREATED: %s\n", test.CreatedAt.Format("2006-01-02"))
		fmt.Println()

		fmt.Println("VARIANT  VIEWS    CLICKS   RATE     95% CI")
		fmt.Println(strings.Repeat("─", 52))

		for _, v := range []stats.VariantResult{result.A, result.B} {
			indicator := ""
			if v.Variant == result.Leader {
				indicator = " ← LEADING"
			}

			ciStr := fmt.Sprintf("[%.1f%%, %.1f%%]", v.CILower*100, v.CIUpper*100)
			if v.Views == 0 {
				ciStr = "N/A"
			}

			fmt.Printf("%-7s  %-7d  %-7d  %-7s  %s%s\n",
				v.Variant,
				v.Views,
				v.Clicks,
				formatPercent(v.Rate),
				ciStr,
				indicator,
			)
		}

		fmt.Println()

		confPct := result.ConfidenceLevel * 100
		if result.Confident {
			fmt.Printf("Statistical significance: %.1f%% confident variant %s is the winner\n", confPct, result.Leader)
		} else if confPct >= 90 {
			fmt.Printf("Statistical significance: %.1f%% confident variant %s leads (not yet significant)\n", confPct, result.Leader)
		} else {
			fmt.Println("Statistical significance: Not enough data to determine a winner")
		}

		return nil
	})
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}
