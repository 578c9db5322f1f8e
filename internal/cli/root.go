package cli

import (
	"time"

	"github.com/alexanderramin/imihigo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Performance service.PerformanceService
	Export      service.ExportService
	Import      service.ImportService
	// Persistence reports when templates were last saved. Nil hides that line.
	Persistence service.PersistenceService

	// ExportDir is the default directory for "export".
	ExportDir string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Prompter collects wizard answers. Nil uses huh forms.
	Prompter Prompter

	// Now is the clock used for the default quarter. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "imihigo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "imihigo",
		Short:         "Track Imihigo performance contracts and their quarterly progress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatusCmd(app),
		newTreeCmd(app),
		newTemplatesCmd(app),
		newAchieveCmd(app),
		newTargetCmd(app),
		newRenameCmd(app),
		newFieldCmd(app),
		newAnalyticsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newNewCmd(app),
	)

	return root
}
