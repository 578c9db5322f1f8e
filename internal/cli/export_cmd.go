package cli

import (
	"fmt"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a CSV report of the selected template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = app.ExportDir
			}
			if dir == "" {
				dir = "."
			}
			path, err := app.Export.Export(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", formatter.Bold(path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default from IMIHIGO_EXPORT_DIR)")
	return cmd
}
