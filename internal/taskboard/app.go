// Package taskboard wires configuration, storage and the task board together
// for the CLI and TUI hosts.
package taskboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/internal/core/task"
	"github.com/hay-kot/taskboard/internal/data/stores"
)

// App is the central entry point for all taskboard operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Storage *Storage
	Bridge  *task.Bridge
	Export  *Exporter

	log zerolog.Logger
}

// NewApp opens the configured storage backend and builds the persistence
// bridge over it.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	storage, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Storage: storage,
		Bridge:  task.NewBridge(stores.NewTaskStore(storage.KV), log),
		Export:  NewExporter(),
		log:     log,
	}, nil
}

// Board loads the persisted list and returns a board that writes every
// mutation back to storage.
func (a *App) Board(ctx context.Context, opts ...task.Option) *task.Board {
	return a.Bridge.Open(ctx, opts...)
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a == nil || a.Storage == nil {
		return nil
	}
	if err := a.Storage.Close(); err != nil {
		a.log.Error().Err(err).Msg("failed to close storage")
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
