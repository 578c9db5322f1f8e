package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/imihigo/internal/builder"
	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Author a new template interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Prompter
			if p == nil {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("'imihigo new' needs an interactive terminal")
				}
				p = huhPrompter{}
			}

			w := &wizard{p: p, b: builder.New()}
			if err := w.run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled. Nothing was saved."))
					return nil
				}
				return err
			}

			ctx := cmd.Context()
			idx, err := app.Performance.CompleteBuilder(ctx, w.b)
			if err != nil {
				return err
			}
			d, err := app.Performance.Dashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(fmt.Sprintf("Template #%d saved and selected", idx), d))
			return nil
		},
	}
}
