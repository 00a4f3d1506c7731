package taskboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskboard/internal/core/config"
	"github.com/hay-kot/taskboard/internal/core/kv"
	"github.com/hay-kot/taskboard/internal/data/db"
	"github.com/hay-kot/taskboard/internal/data/stores"
	"github.com/hay-kot/taskboard/internal/store/jsonfile"
)

// Storage is an open key-value backend.
type Storage struct {
	Backend  string
	Location string
	KV       kv.KV

	closer func() error
}

// Close releases resources held by the backend.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// OpenStorage opens the backend named by cfg.Storage.Backend. A corrupt sqlite
// database is moved aside and replaced with an empty one.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		path := cfg.StorageFile()
		return &Storage{
			Backend:  config.BackendFile,
			Location: path,
			KV:       jsonfile.NewKVStore(path),
		}, nil
	case config.BackendMemory:
		return &Storage{
			Backend:  config.BackendMemory,
			Location: "memory",
			KV:       kv.NewMemory(),
		}, nil
	case config.BackendSQLite:
		database, err := openDatabase(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Backend:  config.BackendSQLite,
			Location: database.Path(),
			KV:       stores.NewKVStore(database),
			closer:   database.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("recover corrupt database: %w", rerr)
	}
	log.Warn().Ctx(ctx).Err(err).Str("backup", backup).Msg("database was corrupt, starting fresh")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
