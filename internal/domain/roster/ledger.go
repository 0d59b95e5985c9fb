package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

// Ledger is the append-only view over roster slots. Closed slots are never
// changed; every mutation closes the open slot and opens its successor.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// OpenInitialSlot creates a player's first slot on a team during draft setup.
func (l *Ledger) OpenInitialSlot(ctx context.Context, teamID, playerID int64, position, drafted Position, effective time.Time) (Slot, error) {
	slot := Slot{
		TeamID:          teamID,
		PlayerID:        playerID,
		Position:        position,
		DraftedPosition: drafted,
		Status:          StatusFor(position),
		EffectiveDate:   calendar.Normalize(effective),
	}
	if err := slot.Validate(); err != nil {
		return Slot{}, err
	}

	if _, exists, err := l.repo.FindOpen(ctx, teamID, playerID); err != nil {
		return Slot{}, fmt.Errorf("find open slot: %w", err)
	} else if exists {
		return Slot{}, fmt.Errorf("%w: team=%d player=%d", ErrSlotAlreadyOpen, teamID, playerID)
	}

	if slot.IsStarter() {
		occupied, err := l.IsPositionOccupied(ctx, teamID, position)
		if err != nil {
			return Slot{}, err
		}
		if occupied {
			return Slot{}, fmt.Errorf("%w: team=%d position=%s", ErrPositionOccupied, teamID, position)
		}
	}

	created, err := l.repo.Insert(ctx, slot)
	if err != nil {
		return Slot{}, fmt.Errorf("insert slot: %w", err)
	}
	return created, nil
}

// CloseAndOpen ends the player's open slot at next.EffectiveDate and opens
// the next one, carrying the drafted position forward.
func (l *Ledger) CloseAndOpen(ctx context.Context, teamID, playerID int64, next Assignment) (Slot, error) {
	current, err := l.GetOpenSlot(ctx, teamID, playerID)
	if err != nil {
		return Slot{}, err
	}

	effective := calendar.Normalize(next.EffectiveDate)
	if effective.IsZero() {
		return Slot{}, fmt.Errorf("%w: effective date is required", ErrInvalidEffectiveDate)
	}
	if effective.Before(current.EffectiveDate) {
		return Slot{}, fmt.Errorf(
			"%w: %s is before the current slot started (%s)",
			ErrInvalidEffectiveDate, calendar.Format(effective), calendar.Format(current.EffectiveDate),
		)
	}

	status := next.Status
	if status == "" {
		status = StatusFor(next.Position)
	}
	opened := Slot{
		TeamID:          teamID,
		PlayerID:        playerID,
		Position:        next.Position,
		DraftedPosition: current.DraftedPosition,
		Status:          status,
		EffectiveDate:   effective,
	}
	if status == StatusBench {
		opened.Reason = strings.TrimSpace(next.Reason)
	}
	if err := opened.Validate(); err != nil {
		return Slot{}, err
	}

	if err := l.repo.Close(ctx, current.ID, effective); err != nil {
		return Slot{}, fmt.Errorf("close slot %d: %w", current.ID, err)
	}
	created, err := l.repo.Insert(ctx, opened)
	if err != nil {
		return Slot{}, fmt.Errorf("insert slot: %w", err)
	}
	return created, nil
}

func (l *Ledger) GetOpenSlot(ctx context.Context, teamID, playerID int64) (Slot, error) {
	slot, exists, err := l.repo.FindOpen(ctx, teamID, playerID)
	if err != nil {
		return Slot{}, fmt.Errorf("find open slot: %w", err)
	}
	if !exists {
		return Slot{}, fmt.Errorf("%w: team=%d player=%d", ErrSlotNotFound, teamID, playerID)
	}
	return slot, nil
}

// IsPositionOccupied is always false for the bench.
func (l *Ledger) IsPositionOccupied(ctx context.Context, teamID int64, position Position) (bool, error) {
	_, occupied, err := l.Occupant(ctx, teamID, position)
	return occupied, err
}

func (l *Ledger) Occupant(ctx context.Context, teamID int64, position Position) (Slot, bool, error) {
	if position.IsBench() {
		return Slot{}, false, nil
	}
	slot, exists, err := l.repo.FindOpenStarter(ctx, teamID, position)
	if err != nil {
		return Slot{}, false, fmt.Errorf("find starter at %s: %w", position, err)
	}
	return slot, exists, nil
}

func (l *Ledger) ListOpen(ctx context.Context, teamID int64) ([]Slot, error) {
	slots, err := l.repo.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	SortBenchLast(slots)
	return slots, nil
}

func (l *Ledger) ListActiveOn(ctx context.Context, teamID int64, date time.Time) ([]Slot, error) {
	slots, err := l.repo.ListActiveOn(ctx, teamID, calendar.Normalize(date))
	if err != nil {
		return nil, fmt.Errorf("list slots active on %s: %w", calendar.Format(date), err)
	}
	SortBenchLast(slots)
	return slots, nil
}
