package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return false, fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := memory.LoadSeed(ctx, NewTransactor(db), memory.DemoSeed()); err != nil {
		return false, fmt.Errorf("bootstrap seed: %w", err)
	}
	return true, nil
}
