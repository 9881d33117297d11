package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

func init() {
	rootCmd.AddCommand(newAssignCmd())
}

func newAssignCmd() *cobra.Command {
	var (
		visitorFlag string
		previewFlag string
	)

	cmd := &cobra.Command{
		Use:   "assign <testId>",
		Short: "Resolve the variant for a visitor",
		Long: `Resolve the variant a visitor sees for a test.

Uses the local state store (--state-dir), so repeated runs keep the
same visitor and the same assignment. Forced preview modes override
the draw without touching the stored assignment.

Examples:
  dxab assign promo1
  dxab assign promo1 --preview "Force B"
  dxab assign promo1 --visitor 3e8f1c2a-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			testID := args[0]

			mode := abtest.ModeAuto
			if previewFlag != "" {
				m, ok := abtest.ParseMode(previewFlag)
				if !ok {
					return fmt.Errorf("invalid preview mode %q (want Auto, Force A, or Force B)", previewFlag)
				}
				mode = m
			}

			state, closeState := openStateStore()
			defer closeState()

			if visitorFlag != "" {
				if err := state.Set(abtest.VisitorIDKey, visitorFlag); err != nil {
					return fmt.Errorf("failed to pin visitor id: %w", err)
				}
			}

			engine := abtest.NewEngine(state, log)
			visitorID := engine.VisitorID()
			variant := engine.Resolve(testID, mode)

			fmt.Printf("Visitor: %s\n", visitorID)
			if mode == abtest.ModeAuto {
				fmt.Printf("Variant: %s\n", variant)
			} else {
				fmt.Printf("Variant: %s (forced by %q, assignment not stored)\n", variant, mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&visitorFlag, "visitor", "", "pin the visitor id before resolving")
	cmd.Flags().StringVar(&previewFlag, "preview", "", `preview mode ("Auto", "Force A", "Force B")`)

	return cmd
}
