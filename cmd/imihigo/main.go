package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/imihigo/internal/cli"
	"github.com/alexanderramin/imihigo/internal/config"
	"github.com/alexanderramin/imihigo/internal/db"
	"github.com/alexanderramin/imihigo/internal/repository"
	"github.com/alexanderramin/imihigo/internal/service"
	"github.com/alexanderramin/imihigo/internal/templates"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Every committed change to the workspace is written back through the
	// persistence service.
	persistence := service.NewPersistenceService(
		repository.NewSQLiteKVStore(database),
		db.NewSQLiteUnitOfWork(database),
		logger,
		observers...,
	)
	workspace := templates.NewWorkspace(persistence.Load(context.Background()), persistence)

	app := &cli.App{
		Performance: service.NewPerformanceService(workspace, observers...),
		Export:      service.NewExportService(workspace, observers...),
		Import:      service.NewImportService(workspace, observers...),
		Persistence: persistence,
		ExportDir:   cfg.ExportDir,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
