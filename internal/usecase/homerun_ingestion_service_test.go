package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	feedmock "github.com/riskibarqy/homerun-derby/internal/mocks/domain/feed"
	"github.com/stretchr/testify/mock"
)

func TestHomeRunIngestionService_RunIngestsFinalGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	from, to := date(time.May, 9), date(time.May, 10)

	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, from, to).
		Return([]feed.Game{
			{GamePK: 9001, OfficialDate: from, StatusCode: feed.StatusFinal, HomeTeamID: clubYankees, AwayTeamID: 111},
			{GamePK: 9002, OfficialDate: to, StatusCode: feed.StatusInProgress, HomeTeamID: clubPhillies, AwayTeamID: 121},
		}, nil).
		Once()
	provider.
		On("Boxscore", mock.Anything, int64(9001)).
		Return([]feed.BattingLine{
			{PlayerMLBID: 592450, FullName: "Aaron Judge", HomeRuns: 2},
			{PlayerMLBID: 519317, FullName: "Giancarlo Stanton", HomeRuns: 1},
			{PlayerMLBID: 646240, FullName: "Rafael Devers", HomeRuns: 1},
			{PlayerMLBID: 665742, FullName: "Juan Soto", HomeRuns: 0},
		}, nil).
		Once()

	svc := NewHomeRunIngestionService(store, store.Repositories(), provider, NewScoringService(store, nil, nil), HomeRunIngestionConfig{}, nil, nil)
	summary, err := svc.Run(ctx, from, to)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Games != 2 || summary.FinalGames != 1 {
		t.Fatalf("unexpected game counts: %+v", summary)
	}
	if summary.Events != 2 || summary.HomeRuns != 3 || summary.UnknownPlayers != 1 {
		t.Fatalf("unexpected event counts: %+v", summary)
	}
	if summary.Scoring.Credits != 2 {
		t.Fatalf("expected 2 credits for the starter only, got=%d", summary.Scoring.Credits)
	}

	events, err := store.Repositories().HomeRuns.ListByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected the benched player's home run to be kept as an event, got=%+v", events)
	}
}

func TestHomeRunIngestionService_UpsertReplacesCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	day := date(time.May, 9)

	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, day, day).
		Return([]feed.Game{{GamePK: 9001, OfficialDate: day, StatusCode: feed.StatusFinal}}, nil).
		Twice()
	provider.
		On("Boxscore", mock.Anything, int64(9001)).
		Return([]feed.BattingLine{{PlayerMLBID: 592450, HomeRuns: 1}}, nil).
		Once()
	provider.
		On("Boxscore", mock.Anything, int64(9001)).
		Return([]feed.BattingLine{{PlayerMLBID: 592450, HomeRuns: 2}}, nil).
		Once()

	svc := NewHomeRunIngestionService(store, store.Repositories(), provider, NewScoringService(store, nil, nil), HomeRunIngestionConfig{FetchConcurrency: 1}, nil, nil)
	if _, err := svc.Run(ctx, day, day); err != nil {
		t.Fatalf("first run: %v", err)
	}
	summary, err := svc.Run(ctx, day, day)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Scoring.DeletedCredits != 1 || summary.Scoring.Credits != 2 {
		t.Fatalf("expected the latest count to replace the first, got=%+v", summary.Scoring)
	}

	events, err := store.Repositories().HomeRuns.ListByDateRange(ctx, day, day)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].HomeRuns != 2 {
		t.Fatalf("expected one event with 2 home runs, got=%+v", events)
	}
}

func TestHomeRunIngestionService_BoxscoreFailureWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)
	day := date(time.May, 9)
	feedErr := errors.New("boxscore unavailable")

	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, day, day).
		Return([]feed.Game{
			{GamePK: 9001, OfficialDate: day, StatusCode: feed.StatusFinal},
			{GamePK: 9002, OfficialDate: day, StatusCode: feed.StatusFinal},
		}, nil).
		Once()
	provider.
		On("Boxscore", mock.Anything, int64(9001)).
		Return([]feed.BattingLine{{PlayerMLBID: 592450, HomeRuns: 1}}, nil).
		Maybe()
	provider.
		On("Boxscore", mock.Anything, int64(9002)).
		Return(nil, feedErr).
		Once()

	svc := NewHomeRunIngestionService(store, store.Repositories(), provider, NewScoringService(store, nil, nil), HomeRunIngestionConfig{FetchConcurrency: 1}, nil, nil)
	if _, err := svc.Run(ctx, day, day); !errors.Is(err, feedErr) {
		t.Fatalf("expected boxscore error, got=%v", err)
	}

	events, err := store.Repositories().HomeRuns.ListByDateRange(ctx, day, day)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("failed run must not write events, got=%+v", events)
	}
}
