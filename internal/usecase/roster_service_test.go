package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
	feedmock "github.com/riskibarqy/homerun-derby/internal/mocks/domain/feed"
	"github.com/stretchr/testify/mock"
)

func newRosterService(t *testing.T, store *memory.Store, provider feed.Provider) *RosterService {
	t.Helper()

	svc := NewRosterService(store, store.Repositories(), provider, RosterServiceConfig{FeedTimeout: time.Second}, nil, nil)
	svc.now = fixedClock(2025, time.May, 10, 15)
	return svc
}

func slotFor(t *testing.T, entries []RosterEntry, playerID int64) roster.Slot {
	t.Helper()

	for _, entry := range entries {
		if entry.Slot.PlayerID == playerID {
			return entry.Slot
		}
	}
	t.Fatalf("player %d not on roster", playerID)
	return roster.Slot{}
}

func TestRosterService_BenchThenReactivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRosterService(t, seededStore(t), nil)

	benched, err := svc.Move(ctx, MoveInput{
		TeamID:        teamDana,
		PlayerID:      playerAlonso,
		Position:      "BEN",
		EffectiveDate: date(time.April, 1),
	})
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if benched.Slot.Status != roster.StatusBench || benched.Slot.Reason != roster.DefaultBenchReason {
		t.Fatalf("expected benched with default reason, got=%+v", benched.Slot)
	}

	if _, err := svc.Move(ctx, MoveInput{
		TeamID:        teamDana,
		PlayerID:      playerAlonso,
		Position:      "1b",
		EffectiveDate: date(time.April, 10),
	}); err != nil {
		t.Fatalf("reactivate: %v", err)
	}

	onFifth, err := svc.RosterOn(ctx, teamDana, date(time.April, 5))
	if err != nil {
		t.Fatalf("roster on 04-05: %v", err)
	}
	if got := slotFor(t, onFifth, playerAlonso); got.Status != roster.StatusBench {
		t.Fatalf("expected bench on 04-05, got=%+v", got)
	}

	onFifteenth, err := svc.RosterOn(ctx, teamDana, date(time.April, 15))
	if err != nil {
		t.Fatalf("roster on 04-15: %v", err)
	}
	got := slotFor(t, onFifteenth, playerAlonso)
	if got.Status != roster.StatusStarter || got.Position != roster.PositionFirstBase || got.DraftedPosition != roster.PositionFirstBase {
		t.Fatalf("expected starter at 1B on 04-15, got=%+v", got)
	}
}

func TestRosterService_MoveRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   MoveInput
		wantErr error
	}{
		{
			name:    "starter cannot leave drafted position",
			input:   MoveInput{TeamID: teamDana, PlayerID: playerAlonso, Position: "C"},
			wantErr: roster.ErrIllegalPositionChange,
		},
		{
			name:    "bench draftee cannot take an occupied position",
			input:   MoveInput{TeamID: teamDana, PlayerID: playerStanton, Position: "DH"},
			wantErr: roster.ErrPositionOccupied,
		},
		{
			name:    "player from another team",
			input:   MoveInput{TeamID: teamDana, PlayerID: playerBichette, Position: "BEN"},
			wantErr: roster.ErrSlotNotFound,
		},
		{
			name:    "unknown team",
			input:   MoveInput{TeamID: 99, PlayerID: playerAlonso, Position: "BEN"},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown position",
			input:   MoveInput{TeamID: teamDana, PlayerID: playerAlonso, Position: "P"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "effective date before current slot",
			input:   MoveInput{TeamID: teamDana, PlayerID: playerAlonso, Position: "BEN", EffectiveDate: date(time.March, 1)},
			wantErr: roster.ErrInvalidEffectiveDate,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := seededStore(t)
			svc := newRosterService(t, store, nil)
			before, err := svc.CurrentRoster(context.Background(), teamDana)
			if err != nil {
				t.Fatalf("current roster: %v", err)
			}

			_, err = svc.Move(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got=%v", tc.wantErr, err)
			}

			after, err := svc.CurrentRoster(context.Background(), teamDana)
			if err != nil {
				t.Fatalf("current roster: %v", err)
			}
			if len(after) != len(before) {
				t.Fatalf("rejected move must not change the roster")
			}
			for i := range before {
				if before[i].Slot.ID != after[i].Slot.ID {
					t.Fatalf("rejected move must not change the roster")
				}
			}
		})
	}
}

func TestRosterService_BenchIgnoresBenchCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newRosterService(t, seededStore(t), nil)

	for _, id := range []int64{playerJudge, playerAlonso, playerRaleigh, playerSchwarber} {
		if _, err := svc.Move(ctx, MoveInput{TeamID: teamDana, PlayerID: id, Position: "BEN", Reason: "Rest"}); err != nil {
			t.Fatalf("bench player %d: %v", id, err)
		}
	}

	entries, err := svc.CurrentRoster(ctx, teamDana)
	if err != nil {
		t.Fatalf("current roster: %v", err)
	}
	bench := 0
	for i, entry := range entries {
		if entry.Slot.Position.IsBench() {
			bench++
			continue
		}
		if bench > 0 {
			t.Fatalf("starter listed after bench at index %d", i)
		}
	}
	if bench != 5 {
		t.Fatalf("expected 5 bench players, got=%d", bench)
	}
}

func TestRosterService_SwapImmediate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, date(time.May, 10), date(time.May, 10)).
		Return([]feed.Game{{GamePK: 1, StatusCode: "S", HomeTeamID: clubYankees, AwayTeamID: clubPhillies}}, nil).
		Once()

	svc := newRosterService(t, seededStore(t), provider)
	result, err := svc.Swap(ctx, SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerSchwarber, Reason: "Slump"})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if !result.Immediate || !result.EffectiveDate.Equal(date(time.May, 10)) {
		t.Fatalf("expected immediate swap, got=%+v", result)
	}
	if result.Message != "Players swapped successfully - effective immediately" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if result.First.Position != roster.PositionDesignated || result.First.DraftedPosition != roster.PositionBench {
		t.Fatalf("unexpected first slot: %+v", result.First)
	}
	if result.Second.Position != roster.PositionBench || result.Second.Reason != "Slump" || result.Second.DraftedPosition != roster.PositionDesignated {
		t.Fatalf("unexpected second slot: %+v", result.Second)
	}
}

func TestRosterService_SwapDeferredWhenClubAlreadyPlaying(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, mock.Anything, mock.Anything).
		Return([]feed.Game{
			{GamePK: 1, StatusCode: feed.StatusFinal, HomeTeamID: clubYankees, AwayTeamID: 110},
			{GamePK: 2, StatusCode: feed.StatusInProgress, HomeTeamID: 121, AwayTeamID: clubPhillies},
		}, nil).
		Once()

	svc := newRosterService(t, seededStore(t), provider)
	result, err := svc.Swap(ctx, SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerSchwarber})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if result.Immediate || !result.EffectiveDate.Equal(date(time.May, 11)) {
		t.Fatalf("expected swap deferred to tomorrow, got=%+v", result)
	}
	want := "Players swapped successfully - change will be effective 2025-05-11 (Giancarlo Stanton, Kyle Schwarber already playing today)"
	if result.Message != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", result.Message, want)
	}

	today, err := svc.RosterOn(ctx, teamDana, date(time.May, 10))
	if err != nil {
		t.Fatalf("roster today: %v", err)
	}
	if got := slotFor(t, today, playerSchwarber); got.Position != roster.PositionDesignated {
		t.Fatalf("today must still show the pre-swap lineup, got=%+v", got)
	}
	tomorrow, err := svc.RosterOn(ctx, teamDana, date(time.May, 11))
	if err != nil {
		t.Fatalf("roster tomorrow: %v", err)
	}
	if got := slotFor(t, tomorrow, playerStanton); got.Position != roster.PositionDesignated {
		t.Fatalf("tomorrow must show the swap, got=%+v", got)
	}
	current, err := svc.CurrentRoster(ctx, teamDana)
	if err != nil {
		t.Fatalf("current roster: %v", err)
	}
	for _, entry := range current {
		switch entry.Slot.PlayerID {
		case playerStanton, playerSchwarber:
			if !entry.Pending {
				t.Fatalf("deferred slot must be flagged pending, got=%+v", entry)
			}
		default:
			if entry.Pending {
				t.Fatalf("untouched slot flagged pending: %+v", entry)
			}
		}
	}
}

func TestRosterService_SwapFeedFailureCommitsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := feedmock.NewProvider(t)
	provider.
		On("Schedule", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).
		Once()

	store := seededStore(t)
	svc := newRosterService(t, store, provider)
	_, err := svc.Swap(ctx, SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerSchwarber})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}

	entries, err := svc.CurrentRoster(ctx, teamDana)
	if err != nil {
		t.Fatalf("current roster: %v", err)
	}
	if got := slotFor(t, entries, playerSchwarber); got.Position != roster.PositionDesignated || !got.EffectiveDate.Equal(date(time.March, 27)) {
		t.Fatalf("failed swap must leave the ledger unchanged, got=%+v", got)
	}
}

func TestRosterService_SwapRejectsIllegalLegBeforeCallingFeed(t *testing.T) {
	t.Parallel()

	provider := feedmock.NewProvider(t)
	svc := newRosterService(t, seededStore(t), provider)

	_, err := svc.Swap(context.Background(), SwapInput{TeamID: teamDana, Player1ID: playerAlonso, Player2ID: playerRaleigh})
	if !errors.Is(err, roster.ErrIllegalPositionChange) {
		t.Fatalf("expected ErrIllegalPositionChange, got=%v", err)
	}
	if !strings.Contains(err.Error(), "drafted") {
		t.Fatalf("expected the violated rule in the message, got=%q", err.Error())
	}
	provider.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestRosterService_SwapRequiresBothPlayersOnTeam(t *testing.T) {
	t.Parallel()

	svc := newRosterService(t, seededStore(t), feedmock.NewProvider(t))
	_, err := svc.Swap(context.Background(), SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerSoto})
	if !errors.Is(err, roster.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got=%v", err)
	}

	_, err = svc.Swap(context.Background(), SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerStanton})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self swap, got=%v", err)
	}
}

// optionRecorder runs transactions on the memory store and keeps the
// options each one was opened with.
type optionRecorder struct {
	*memory.Store
	seen []storage.TxOptions
}

func (r *optionRecorder) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error, opts ...storage.TxOption) error {
	r.seen = append(r.seen, storage.ResolveTxOptions(opts...))
	return r.Store.WithinTx(ctx, fn, opts...)
}

func TestRosterService_MutationsUseSnapshotTransactions(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	recorder := &optionRecorder{Store: store}
	svc := NewRosterService(recorder, store.Repositories(), feedmock.NewProvider(t), RosterServiceConfig{FeedTimeout: time.Second}, nil, nil)
	svc.now = fixedClock(2025, time.May, 10, 15)

	if _, err := svc.Move(context.Background(), MoveInput{
		TeamID:        teamDana,
		PlayerID:      playerAlonso,
		Position:      "BEN",
		EffectiveDate: date(time.April, 1),
	}); err != nil {
		t.Fatalf("move: %v", err)
	}
	_, _ = svc.Swap(context.Background(), SwapInput{TeamID: teamDana, Player1ID: playerStanton, Player2ID: playerSoto})

	if len(recorder.seen) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(recorder.seen))
	}
	for i, opts := range recorder.seen {
		if !opts.Snapshot {
			t.Fatalf("transaction %d opened without snapshot isolation", i)
		}
	}
}
