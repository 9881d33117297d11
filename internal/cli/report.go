package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
	"github.com/dxforce-site/abTestHeroBanner/internal/beacon"
	"github.com/dxforce-site/abTestHeroBanner/internal/kv"
	"github.com/dxforce-site/abTestHeroBanner/internal/store"
)

func init() {
	rootCmd.AddCommand(newReportCmd())
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <testId> <View|Click>",
		Short: "Report a view or click for this visitor",
		Long: `Report a view or click event for the local visitor.

Each (test, action) pair is reported at most once per visitor; reruns
are no-ops. Events go to DXAB_BEACON_URL when set, otherwise straight
into the local collector database.

Examples:
  dxab report promo1 View
  dxab report promo1 Click`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			testID := args[0]

			action, ok := abtest.ParseAction(args[1])
			if !ok {
				return fmt.Errorf("invalid action %q (want View or Click)", args[1])
			}

			state, closeState := openStateStore()
			defer closeState()

			if cfg.BeaconURL != "" {
				return reportEvent(state, beacon.New(cfg.BeaconURL), testID, action)
			}
			return withStore(func(s *store.SQLiteStore) error {
				return reportEvent(state, store.NewRecorder(s), testID, action)
			})
		},
	}
}

func reportEvent(state kv.Store, sender abtest.Sender, testID string, action abtest.Action) error {
	engine := abtest.NewEngine(state, log)
	visitorID := engine.VisitorID()
	variant := engine.Resolve(testID, abtest.ModeAuto)

	reporter := abtest.NewReporter(state, sender, log)
	if !reporter.Log(abtest.Event{TestID: testID, Variant: variant, Action: action, VisitorID: visitorID}) {
		fmt.Printf("%s already reported for test %s, nothing sent\n", action, testID)
		return nil
	}
	reporter.Flush()

	fmt.Printf("Reported %s for test %s (variant %s)\n", action, testID, variant)
	return nil
}
