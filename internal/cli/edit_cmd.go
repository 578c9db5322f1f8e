package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/service"
	"github.com/spf13/cobra"
)

type quarterEdit func(app *App, cmd *cobra.Command, indicatorID string, quarter int, value float64) (service.EditResult, error)

func newAchieveCmd(app *App) *cobra.Command {
	return newQuarterEditCmd(app, "achieve", "Record the achievement of an indicator for a quarter",
		func(app *App, cmd *cobra.Command, id string, q int, v float64) (service.EditResult, error) {
			return app.Performance.RecordAchievement(cmd.Context(), id, q, v)
		})
}

func newTargetCmd(app *App) *cobra.Command {
	return newQuarterEditCmd(app, "target", "Set the target of an indicator for a quarter",
		func(app *App, cmd *cobra.Command, id string, q int, v float64) (service.EditResult, error) {
			return app.Performance.SetQuarterTarget(cmd.Context(), id, q, v)
		})
}

// newQuarterEditCmd builds "achieve" and "target", which share arguments and
// output. The value is read leniently: "12abc" is 12 and "abc" is 0.
func newQuarterEditCmd(app *App, use, short string, apply quarterEdit) *cobra.Command {
	var quarter int

	cmd := &cobra.Command{
		Use:   use + " <indicator-id> <value>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := quarter
			if q == 0 {
				q = domain.CurrentQuarter(app.now())
			}
			if err := domain.CheckQuarter(q); err != nil {
				return err
			}
			res, err := apply(app, cmd, args[0], q, domain.ParseFigure(args[1]))
			if err != nil {
				return err
			}
			return printIndicatorResult(cmd.OutOrStdout(), res, args[0])
		},
	}

	cmd.Flags().IntVarP(&quarter, "quarter", "q", 0, "quarter 1-4 (default: current calendar quarter)")
	return cmd
}

func newFieldCmd(app *App) *cobra.Command {
	names := make([]string, 0, len(domain.ValidIndicatorFields))
	for f := range domain.ValidIndicatorFields {
		names = append(names, string(f))
	}

	return &cobra.Command{
		Use:   "field <indicator-id> <field> <value>",
		Short: "Edit the name, baseline or source of data of an indicator",
		Long:  "Edit a free-text attribute of an indicator. Fields: " + strings.Join(sortedStrings(names), ", "),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := domain.IndicatorField(args[1])
			res, err := app.Performance.SetIndicatorField(cmd.Context(), args[0], field, args[2])
			if err != nil {
				return err
			}
			return printIndicatorResult(cmd.OutOrStdout(), res, args[0])
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <node-id> <name>",
		Short: "Rename any node of the selected template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Performance.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !res.Applied {
				fmt.Fprintln(w, formatter.StyleNotice.Render("No node with id "+args[0]+"; nothing changed."))
				return nil
			}
			n, _ := res.Contract.Node(args[0])
			fmt.Fprintf(w, "%s %s\n", formatter.KindBadge(n.Kind()), formatter.Bold(n.NodeName()))
			return nil
		},
	}
}

func printIndicatorResult(w io.Writer, res service.EditResult, id string) error {
	if !res.Applied {
		fmt.Fprintln(w, formatter.StyleNotice.Render("No indicator with id "+id+"; nothing changed."))
		return nil
	}
	ind, ok := res.Contract.Indicator(id)
	if !ok {
		return fmt.Errorf("indicator %s missing after edit", id)
	}
	fmt.Fprint(w, formatter.FormatIndicator(ind))
	return nil
}
