package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

func draftInput(picks ...DraftPick) DraftImportInput {
	return DraftImportInput{
		LeagueName: "Dong Bong League",
		SeasonYear: 2026,
		StartDate:  calendar.Date(2026, time.March, 26),
		EndDate:    calendar.Date(2026, time.September, 27),
		Picks:      picks,
	}
}

func TestDraftService_ImportCreatesLeague(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	svc := NewDraftService(store, nil)

	result, err := svc.Import(ctx, draftInput(
		DraftPick{Manager: "Riley", Position: "rf", Player: "aaron JUDGE"},
		DraftPick{Manager: "Riley", Position: "BEN", Player: "Giancarlo Stanton"},
		DraftPick{Manager: "Riley", Position: "C", Player: "Nobody Real"},
		DraftPick{Manager: "Morgan", Position: "DH", Player: "Kyle Schwarber"},
	))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Teams) != 2 || result.Teams[0].Name != "Riley's Squad" || result.Teams[1].Name != "Morgan's Squad" {
		t.Fatalf("unexpected teams: %+v", result.Teams)
	}
	if result.Slots != 3 || len(result.SkippedPicks) != 1 || result.SkippedPicks[0].Player != "Nobody Real" {
		t.Fatalf("unexpected slot counts: %+v", result)
	}

	repos := store.Repositories()
	template, err := repos.Leagues.ListTemplate(ctx, result.League.ID)
	if err != nil {
		t.Fatalf("list template: %v", err)
	}
	if len(template) != 10 {
		t.Fatalf("expected default template of 10 rows, got=%d", len(template))
	}

	slots, err := repos.Slots.ListOpenByTeam(ctx, result.Teams[0].ID)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got=%d", len(slots))
	}
	for _, slot := range slots {
		if !slot.EffectiveDate.Equal(result.League.StartDate) {
			t.Fatalf("slot must start on league start date: %+v", slot)
		}
		if slot.PlayerID == playerStanton && (slot.Status != roster.StatusBench || slot.DraftedPosition != roster.PositionBench) {
			t.Fatalf("bench pick must open a bench slot: %+v", slot)
		}
	}
}

func TestDraftService_ImportRollsBackOnConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	before, err := store.Repositories().Leagues.List(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}

	_, err = NewDraftService(store, nil).Import(ctx, draftInput(
		DraftPick{Manager: "Riley", Position: "1B", Player: "Pete Alonso"},
		DraftPick{Manager: "Riley", Position: "1B", Player: "Matt Olson"},
	))
	if !errors.Is(err, roster.ErrPositionOccupied) {
		t.Fatalf("expected ErrPositionOccupied, got=%v", err)
	}

	after, err := store.Repositories().Leagues.List(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("failed import must not create a league")
	}
}

func TestDraftService_ImportValidatesPicks(t *testing.T) {
	t.Parallel()

	svc := NewDraftService(seededStore(t), nil)
	_, err := svc.Import(context.Background(), draftInput(DraftPick{Manager: "Riley", Position: "XX", Player: "Aaron Judge"}))
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrUnknownPosition) {
		t.Fatalf("expected invalid position error, got=%v", err)
	}

	if _, err := svc.Import(context.Background(), draftInput()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty draft, got=%v", err)
	}
}
