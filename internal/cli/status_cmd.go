package cli

import (
	"fmt"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress of the selected template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, idx, err := app.Performance.Current(ctx)
			if err != nil {
				return err
			}
			d, err := app.Performance.Dashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(fmt.Sprintf("Template #%d", idx), d))
			return nil
		},
	}
}

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the hierarchy of the selected template with per-node progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := app.Performance.Tree(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContractTree(lines))
			return nil
		},
	}
}
