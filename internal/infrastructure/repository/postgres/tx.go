package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
)

// Transactor opens READ COMMITTED transactions, or REPEATABLE READ with
// storage.WithSnapshot. Row locks from FindOpen and the deferred starter
// exclusion constraint carry the ledger invariants. Under REPEATABLE READ a
// FindOpen that waited on a concurrently closed slot fails with 40001.
type Transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error, opts ...storage.TxOption) (err error) {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: isolationFor(storage.ResolveTxOptions(opts...))})
	if err != nil {
		return fmt.Errorf("begin tx: %w", classifyError(err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, repositoriesFor(tx)); err != nil {
		return classifyError(err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", classifyError(err))
	}
	return nil
}

func isolationFor(o storage.TxOptions) sql.IsolationLevel {
	if o.Snapshot {
		return sql.LevelRepeatableRead
	}
	return sql.LevelReadCommitted
}

// Repositories returns stores bound to the pool, outside any transaction.
func Repositories(db *sqlx.DB) storage.Repositories {
	return storage.Repositories{
		Slots:    NewRosterRepository(db),
		Players:  NewPlayerRepository(db),
		Teams:    NewTeamRepository(db),
		Leagues:  NewLeagueRepository(db),
		HomeRuns: NewHomeRunRepository(db),
		Credits:  NewScoringRepository(db),
	}
}

func repositoriesFor(tx *sqlx.Tx) storage.Repositories {
	return storage.Repositories{
		Slots:    newTxRosterRepository(tx),
		Players:  &PlayerRepository{db: tx},
		Teams:    &TeamRepository{db: tx},
		Leagues:  &LeagueRepository{db: tx},
		HomeRuns: &HomeRunRepository{db: tx},
		Credits:  &ScoringRepository{db: tx},
	}
}
