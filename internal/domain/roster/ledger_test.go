package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type sliceRepo struct {
	slots  []Slot
	nextID int64
}

func (r *sliceRepo) FindOpen(_ context.Context, teamID, playerID int64) (Slot, bool, error) {
	for _, s := range r.slots {
		if s.TeamID == teamID && s.PlayerID == playerID && s.IsOpen() {
			return s, true, nil
		}
	}
	return Slot{}, false, nil
}

func (r *sliceRepo) FindOpenStarter(_ context.Context, teamID int64, position Position) (Slot, bool, error) {
	for _, s := range r.slots {
		if s.TeamID == teamID && s.Position == position && s.IsStarter() && s.IsOpen() {
			return s, true, nil
		}
	}
	return Slot{}, false, nil
}

func (r *sliceRepo) Close(_ context.Context, slotID int64, endDate time.Time) error {
	for i := range r.slots {
		if r.slots[i].ID == slotID && r.slots[i].IsOpen() {
			end := endDate
			r.slots[i].EndDate = &end
			return nil
		}
	}
	return errors.New("slot not open")
}

func (r *sliceRepo) Insert(_ context.Context, slot Slot) (Slot, error) {
	r.nextID++
	slot.ID = r.nextID
	r.slots = append(r.slots, slot)
	return slot, nil
}

func (r *sliceRepo) ListOpenByTeam(_ context.Context, teamID int64) ([]Slot, error) {
	var out []Slot
	for _, s := range r.slots {
		if s.TeamID == teamID && s.IsOpen() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sliceRepo) ListActiveOn(_ context.Context, teamID int64, date time.Time) ([]Slot, error) {
	var out []Slot
	for _, s := range r.slots {
		if s.TeamID == teamID && s.ActiveOn(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sliceRepo) ListStartersOverlapping(_ context.Context, playerIDs []int64, from, to time.Time) ([]Slot, error) {
	return nil, nil
}

func TestLedger_OpenInitialSlot(t *testing.T) {
	ctx := context.Background()
	repo := &sliceRepo{}
	ledger := NewLedger(repo)
	start := calendar.Date(2025, 3, 27)

	slot, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionFirstBase, PositionFirstBase, start)
	if err != nil {
		t.Fatalf("open initial slot: %v", err)
	}
	if slot.ID == 0 || slot.Status != StatusStarter || !slot.IsOpen() {
		t.Fatalf("unexpected slot %+v", slot)
	}

	if _, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionBench, PositionBench, start); !errors.Is(err, ErrSlotAlreadyOpen) {
		t.Fatalf("expected ErrSlotAlreadyOpen, got %v", err)
	}
	if _, err := ledger.OpenInitialSlot(ctx, 1, 11, PositionFirstBase, PositionFirstBase, start); !errors.Is(err, ErrPositionOccupied) {
		t.Fatalf("expected ErrPositionOccupied, got %v", err)
	}
	if _, err := ledger.OpenInitialSlot(ctx, 1, 12, PositionSecondBase, PositionFirstBase, start); !errors.Is(err, ErrIllegalPositionChange) {
		t.Fatalf("expected ErrIllegalPositionChange, got %v", err)
	}
	if _, err := ledger.OpenInitialSlot(ctx, 1, 13, PositionBench, PositionBench, start); err != nil {
		t.Fatalf("bench slots never collide: %v", err)
	}
	if _, err := ledger.OpenInitialSlot(ctx, 1, 14, PositionBench, PositionBench, start); err != nil {
		t.Fatalf("second bench slot: %v", err)
	}
	if _, err := ledger.OpenInitialSlot(ctx, 2, 11, PositionFirstBase, PositionFirstBase, start); err != nil {
		t.Fatalf("other team may start at 1B: %v", err)
	}
}

func TestLedger_CloseAndOpenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	repo := &sliceRepo{}
	ledger := NewLedger(repo)
	start := calendar.Date(2025, 3, 27)

	if _, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionFirstBase, PositionFirstBase, start); err != nil {
		t.Fatalf("seed: %v", err)
	}

	benchedOn := calendar.Date(2025, 4, 10)
	opened, err := ledger.CloseAndOpen(ctx, 1, 10, Assignment{
		Position:      PositionBench,
		Reason:        "Injury",
		EffectiveDate: benchedOn,
	})
	if err != nil {
		t.Fatalf("close and open: %v", err)
	}
	if opened.DraftedPosition != PositionFirstBase || opened.Status != StatusBench || opened.Reason != "Injury" {
		t.Fatalf("unexpected new slot %+v", opened)
	}

	if len(repo.slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(repo.slots))
	}
	closed := repo.slots[0]
	if closed.IsOpen() || !closed.EndDate.Equal(benchedOn) {
		t.Fatalf("expected first slot closed on %s, got %+v", benchedOn, closed.EndDate)
	}

	// The old slot answers for the day before; the new one from benchedOn on.
	dayBefore, _ := ledger.ListActiveOn(ctx, 1, benchedOn.AddDate(0, 0, -1))
	if len(dayBefore) != 1 || dayBefore[0].Position != PositionFirstBase {
		t.Fatalf("unexpected roster the day before: %+v", dayBefore)
	}
	onDay, _ := ledger.ListActiveOn(ctx, 1, benchedOn)
	if len(onDay) != 1 || onDay[0].Position != PositionBench {
		t.Fatalf("unexpected roster on the day: %+v", onDay)
	}
}

func TestLedger_CloseAndOpenRejectsRewritingHistory(t *testing.T) {
	ctx := context.Background()
	repo := &sliceRepo{}
	ledger := NewLedger(repo)

	if _, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionFirstBase, PositionFirstBase, calendar.Date(2025, 4, 10)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := ledger.CloseAndOpen(ctx, 1, 10, Assignment{Position: PositionBench, EffectiveDate: calendar.Date(2025, 4, 9)})
	if !errors.Is(err, ErrInvalidEffectiveDate) {
		t.Fatalf("expected ErrInvalidEffectiveDate, got %v", err)
	}
	if len(repo.slots) != 1 || !repo.slots[0].IsOpen() {
		t.Fatalf("ledger must be untouched after rejection: %+v", repo.slots)
	}

	// Same-day change leaves a zero-length interval behind.
	if _, err := ledger.CloseAndOpen(ctx, 1, 10, Assignment{Position: PositionBench, EffectiveDate: calendar.Date(2025, 4, 10)}); err != nil {
		t.Fatalf("same-day change: %v", err)
	}
	first := repo.slots[0]
	if first.ActiveOn(calendar.Date(2025, 4, 10)) {
		t.Fatalf("zero-length slot must not be active on any day")
	}
}

func TestLedger_CloseAndOpenValidation(t *testing.T) {
	ctx := context.Background()
	repo := &sliceRepo{}
	ledger := NewLedger(repo)

	if _, err := ledger.CloseAndOpen(ctx, 1, 99, Assignment{Position: PositionBench, EffectiveDate: calendar.Date(2025, 4, 1)}); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}

	if _, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionBench, PositionFirstBase, calendar.Date(2025, 4, 1)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := ledger.CloseAndOpen(ctx, 1, 10, Assignment{Position: PositionThirdBase, EffectiveDate: calendar.Date(2025, 4, 2)}); !errors.Is(err, ErrIllegalPositionChange) {
		t.Fatalf("expected ErrIllegalPositionChange, got %v", err)
	}
	if _, err := ledger.CloseAndOpen(ctx, 1, 10, Assignment{Position: PositionFirstBase}); !errors.Is(err, ErrInvalidEffectiveDate) {
		t.Fatalf("expected ErrInvalidEffectiveDate for zero date, got %v", err)
	}
}

func TestLedger_OccupancyIgnoresBench(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(&sliceRepo{})

	if _, err := ledger.OpenInitialSlot(ctx, 1, 10, PositionBench, PositionBench, calendar.Date(2025, 4, 1)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	occupied, err := ledger.IsPositionOccupied(ctx, 1, PositionBench)
	if err != nil || occupied {
		t.Fatalf("bench is never occupied, got %v %v", occupied, err)
	}
}
