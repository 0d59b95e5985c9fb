package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	feedmock "github.com/riskibarqy/homerun-derby/internal/mocks/domain/feed"
	"github.com/stretchr/testify/mock"
)

func TestPlayerSyncService_SyncCreatesAndUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t)

	provider := feedmock.NewProvider(t)
	provider.
		On("TeamsBySeason", mock.Anything, 2025, []int{103, 104}).
		Return([]feed.Club{{ID: clubPhillies}, {ID: clubYankees}, {ID: 119}}, nil).
		Once()
	provider.
		On("Roster", mock.Anything, clubYankees, 2025).
		Return([]feed.RosterEntry{
			{PlayerMLBID: 592450, FullName: "Aaron Judge", PositionCode: "RF", TeamID: clubYankees},
			{PlayerMLBID: 543037, FullName: "Gerrit Cole", PositionCode: "P", TeamID: clubYankees},
			{PlayerMLBID: 683011, FullName: "Anthony Volpe", PositionCode: "SS", TeamID: clubYankees},
		}, nil).
		Once()
	provider.
		On("Roster", mock.Anything, clubPhillies, 2025).
		Return([]feed.RosterEntry{
			{PlayerMLBID: 547180, FullName: "Bryce Harper", PositionCode: "DH", TeamID: clubPhillies},
			{PlayerMLBID: 554430, FullName: "Zack Wheeler", PositionCode: "SP", TeamID: clubPhillies},
		}, nil).
		Once()
	provider.
		On("Roster", mock.Anything, int64(119), 2025).
		Return([]feed.RosterEntry{
			{PlayerMLBID: 660271, FullName: "Shohei Ohtani", PositionCode: "TWP", TeamID: 119},
		}, nil).
		Once()

	svc := NewPlayerSyncService(store, provider, PlayerSyncConfig{Season: 2025, MaxWorkers: 2}, nil)
	summary, err := svc.Sync(ctx, 0)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	want := PlayerSyncSummary{Season: 2025, Clubs: 3, RosterEntries: 6, SkippedPitchers: 2, Created: 1, Updated: 1, Unchanged: 2}
	if summary != want {
		t.Fatalf("unexpected summary:\n got %+v\nwant %+v", summary, want)
	}

	repos := store.Repositories()
	volpe, ok, err := repos.Players.FindByName(ctx, "anthony volpe")
	if err != nil || !ok {
		t.Fatalf("expected new player to be created, ok=%v err=%v", ok, err)
	}
	if volpe.CurrentMLBTeamID != clubYankees || volpe.PrimaryPosition != "SS" {
		t.Fatalf("unexpected created player: %+v", volpe)
	}
	harper, ok, err := repos.Players.FindByName(ctx, "Bryce Harper")
	if err != nil || !ok {
		t.Fatalf("find harper: ok=%v err=%v", ok, err)
	}
	if harper.PrimaryPosition != "DH" {
		t.Fatalf("expected harper position update, got=%+v", harper)
	}
	if _, ok, _ := repos.Players.FindByName(ctx, "Gerrit Cole"); ok {
		t.Fatalf("pitchers must be skipped")
	}

	all, err := repos.Players.ListAll(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(all) != 21 {
		t.Fatalf("sync must never delete players, got=%d", len(all))
	}
}

func TestPlayerSyncService_RosterFailureWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memoryStoreWithPlayers(t)
	feedErr := errors.New("roster unavailable")

	provider := feedmock.NewProvider(t)
	provider.
		On("TeamsBySeason", mock.Anything, 2025, mock.Anything).
		Return([]feed.Club{{ID: clubYankees}, {ID: clubPhillies}}, nil).
		Once()
	provider.
		On("Roster", mock.Anything, clubYankees, 2025).
		Return([]feed.RosterEntry{{PlayerMLBID: 683011, FullName: "Anthony Volpe", PositionCode: "SS", TeamID: clubYankees}}, nil).
		Once()
	provider.
		On("Roster", mock.Anything, clubPhillies, 2025).
		Return(nil, feedErr).
		Once()

	svc := NewPlayerSyncService(store, provider, PlayerSyncConfig{Season: 2025}, nil)
	if _, err := svc.Sync(ctx, 2025); !errors.Is(err, feedErr) {
		t.Fatalf("expected roster error, got=%v", err)
	}
	all, err := store.Repositories().Players.ListAll(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("failed sync must not write players, got=%d", len(all))
	}
}

func TestPlayerSyncService_RequiresSeason(t *testing.T) {
	t.Parallel()

	svc := NewPlayerSyncService(seededStore(t), feedmock.NewProvider(t), PlayerSyncConfig{}, nil)
	if _, err := svc.Sync(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestIsPitcherPositionCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"P", "sp", "RP", "TWP"} {
		if !player.IsPitcherPosition(code) {
			t.Fatalf("expected %q to be a pitcher code", code)
		}
	}
	if player.IsPitcherPosition("DH") {
		t.Fatalf("DH is not a pitcher code")
	}
}
