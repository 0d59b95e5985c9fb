// Package storage defines the unit of work shared by every persistence backend.
package storage

import (
	"context"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
)

// Repositories is the set of stores bound to one transaction.
type Repositories struct {
	Slots    roster.Repository
	Players  player.Repository
	Teams    team.Repository
	Leagues  league.Repository
	HomeRuns homerun.Repository
	Credits  scoring.Repository
}

// Transactor runs fn in a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error, opts ...TxOption) error
}

// TxOptions tunes one transaction. Backends that serialize writers may
// ignore them.
type TxOptions struct {
	// Snapshot reads every statement from the transaction's first snapshot.
	// A locked row changed by a concurrent commit then fails the
	// transaction with usecase.ErrTransient instead of reading as missing.
	Snapshot bool
}

type TxOption func(*TxOptions)

// WithSnapshot is used by read-modify-write roster mutations.
func WithSnapshot() TxOption {
	return func(o *TxOptions) { o.Snapshot = true }
}

func ResolveTxOptions(opts ...TxOption) TxOptions {
	var out TxOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
