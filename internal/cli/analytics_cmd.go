package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *App) *cobra.Command {
	level := &levelValue{level: rollup.LevelIndicator}
	var nodeID string
	var list bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Aggregate baselines, targets and achievements across all templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if list {
				opts, err := app.Performance.AnalyticsOptions(ctx, level.level)
				if err != nil {
					return err
				}
				fmt.Fprint(w, formatter.FormatLevelOptions(level.level, opts))
				return nil
			}

			report, err := app.Performance.Analytics(ctx, level.level, nodeID)
			if err != nil {
				return err
			}
			fmt.Fprint(w, formatter.FormatLevelReport(report))
			return nil
		},
	}

	cmd.Flags().VarP(level, "level", "l", "aggregation level: "+strings.Join(levelNames(), ", "))
	cmd.Flags().StringVarP(&nodeID, "node", "n", "", "restrict to one node of the level (default: all)")
	cmd.Flags().BoolVar(&list, "list", false, "list the selectable nodes of the level")
	_ = cmd.RegisterFlagCompletionFunc("level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return levelNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
