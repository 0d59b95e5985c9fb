package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/homerun-derby/internal/config"
	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	"github.com/riskibarqy/homerun-derby/internal/domain/standings"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Storage is one persistence backend with everything the services read from.
type Storage struct {
	Tx        storage.Transactor
	Repos     storage.Repositories
	Standings standings.Repository
	JobRuns   jobrun.Repository
	Health    interface{ Ping(ctx context.Context) error }
	close     func() error
}

func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens the configured backend and loads the demo league when
// SeedDemoData is set. Postgres only seeds an empty database.
func OpenStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Storage, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return openMemory(ctx, cfg, logger)
	}
}

func openMemory(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Storage, error) {
	store := memory.NewStore()
	if cfg.SeedDemoData {
		if err := memory.LoadSeed(ctx, store, memory.DemoSeed()); err != nil {
			return nil, fmt.Errorf("load demo seed: %w", err)
		}
		logger.Info("demo league loaded", "storage", config.StorageMemory)
	}

	return &Storage{
		Tx:        store,
		Repos:     store.Repositories(),
		Standings: store.Standings(),
		JobRuns:   store.JobRuns(),
		Health:    store,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Storage, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.SeedDemoData {
		seeded, err := postgres.BootstrapSeed(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("demo seed checked", "storage", config.StoragePostgres, "seeded", seeded)
	}

	return &Storage{
		Tx:        postgres.NewTransactor(db),
		Repos:     postgres.Repositories(db),
		Standings: postgres.NewStandingsRepository(db),
		JobRuns:   postgres.NewJobRunRepository(db),
		Health:    dbHealth{db: db},
		close:     db.Close,
	}, nil
}

type dbHealth struct {
	db *sqlx.DB
}

func (h dbHealth) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
