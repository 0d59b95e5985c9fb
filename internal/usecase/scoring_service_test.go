package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
)

func upsertEvents(t *testing.T, store *memory.Store, events ...homerun.Event) {
	t.Helper()

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos storage.Repositories) error {
		return repos.HomeRuns.UpsertEvents(ctx, events)
	})
	if err != nil {
		t.Fatalf("upsert events: %v", err)
	}
}

func TestScoringService_RecomputeCreditsStartersOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	upsertEvents(t, store,
		homerun.Event{PlayerID: playerJudge, GameID: 700, Date: date(time.April, 2), HomeRuns: 2},
		homerun.Event{PlayerID: playerStanton, GameID: 700, Date: date(time.April, 2), HomeRuns: 1},
		homerun.Event{PlayerID: playerSoto, GameID: 701, Date: date(time.April, 3), HomeRuns: 1},
	)

	svc := NewScoringService(store, nil, nil)
	summary, err := svc.Recompute(ctx, date(time.April, 1), date(time.April, 30))
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if summary.Events != 3 || summary.Credits != 3 || summary.DeletedCredits != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	credits, err := store.Repositories().Credits.ListByDateRange(ctx, date(time.April, 1), date(time.April, 30))
	if err != nil {
		t.Fatalf("list credits: %v", err)
	}
	judge := 0
	for _, c := range credits {
		if c.PlayerID == playerStanton {
			t.Fatalf("benched player must not score: %+v", c)
		}
		if c.PlayerID == playerJudge {
			judge++
			if c.TeamID != teamDana || c.Position != roster.PositionRightField {
				t.Fatalf("unexpected judge credit: %+v", c)
			}
		}
	}
	if judge != 2 {
		t.Fatalf("expected one credit per home run, got=%d", judge)
	}
}

func TestScoringService_RecomputeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	upsertEvents(t, store,
		homerun.Event{PlayerID: playerJudge, GameID: 700, Date: date(time.April, 2), HomeRuns: 1},
		homerun.Event{PlayerID: playerOhtani, GameID: 702, Date: date(time.April, 4), HomeRuns: 2},
	)

	svc := NewScoringService(store, nil, nil)
	from, to := date(time.April, 1), date(time.April, 30)
	if _, err := svc.Recompute(ctx, from, to); err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	first, err := store.Repositories().Credits.ListByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("list credits: %v", err)
	}

	summary, err := svc.Recompute(ctx, from, to)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if summary.DeletedCredits != int64(len(first)) {
		t.Fatalf("expected %d deleted credits, got=%d", len(first), summary.DeletedCredits)
	}
	second, err := store.Repositories().Credits.ListByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("list credits: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recompute is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestScoringService_RecomputeFollowsRosterMoves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	rosterSvc := newRosterService(t, store, nil)
	if _, err := rosterSvc.Move(ctx, MoveInput{TeamID: teamDana, PlayerID: playerJudge, Position: "BEN", EffectiveDate: date(time.April, 5)}); err != nil {
		t.Fatalf("bench judge: %v", err)
	}
	upsertEvents(t, store,
		homerun.Event{PlayerID: playerJudge, GameID: 800, Date: date(time.April, 4), HomeRuns: 1},
		homerun.Event{PlayerID: playerJudge, GameID: 801, Date: date(time.April, 5), HomeRuns: 1},
	)

	summary, err := NewScoringService(store, nil, nil).Recompute(ctx, date(time.April, 1), date(time.April, 10))
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if summary.Credits != 1 {
		t.Fatalf("expected only the pre-bench home run to count, got=%d", summary.Credits)
	}
}

func TestScoringService_RecomputeValidatesRange(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(seededStore(t), nil, nil)
	if _, err := svc.Recompute(context.Background(), date(time.May, 2), date(time.May, 1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}
