package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

// Ids assigned by memory.DemoSeed in insertion order.
const (
	teamDana int64 = 1
	teamSam  int64 = 2

	playerJudge     int64 = 1
	playerOhtani    int64 = 2
	playerAlonso    int64 = 3
	playerSchwarber int64 = 4
	playerRaleigh   int64 = 5
	playerSoto      int64 = 11
	playerStanton   int64 = 18
	playerBichette  int64 = 20

	clubYankees  int64 = 147
	clubPhillies int64 = 143
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	if err := memory.LoadSeed(context.Background(), store, memory.DemoSeed()); err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return store
}

func fixedClock(year int, month time.Month, day, hour int) func() time.Time {
	at := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func date(month time.Month, day int) time.Time {
	return calendar.Date(2025, month, day)
}

func memoryStoreWithPlayers(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	_, err := store.Repositories().Players.Create(context.Background(), player.Player{
		MLBID:            592450,
		Name:             "Aaron Judge",
		PrimaryPosition:  "RF",
		CurrentMLBTeamID: clubYankees,
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return store
}
