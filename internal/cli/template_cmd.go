package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "t"},
		Short:   "List and select saved templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTemplateList(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved templates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printTemplateList(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "select <index>",
			Short: "Select the template to work on",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				repo, err := app.Performance.SelectTemplate(cmd.Context(), &idx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(repo))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the selection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := app.Performance.SelectTemplate(cmd.Context(), nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Selection cleared."))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <index>",
			Short: "Delete a saved template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				repo, err := app.Performance.RemoveTemplate(cmd.Context(), idx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(repo))
				return nil
			},
		},
	)
	return cmd
}

func printTemplateList(cmd *cobra.Command, app *App) error {
	w := cmd.OutOrStdout()
	fmt.Fprint(w, formatter.FormatTemplateList(app.Performance.Templates(cmd.Context())))
	if app.Persistence == nil {
		return nil
	}
	ts, err := app.Persistence.LastSaved(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatter.FormatLastSaved(ts))
	return nil
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("template index %q is not a number", s)
	}
	return idx, nil
}
