package cli

import (
	"fmt"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Add a template from a JSON file and select it",
		Long: `Add a template from a JSON file. Nodes list pillars, sectors, outcomes
and outputs linked by "parent_ref"; indicators name their output with
"output_ref". Every ref is replaced by a fresh id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportContract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported template #%d with %d pillars and %d indicators.\n",
				formatter.StyleGreen.Render("✔"), res.Index, res.Contract.Len(), res.IndicatorCount)
			return nil
		},
	}
}
