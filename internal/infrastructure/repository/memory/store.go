package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/player"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	"github.com/riskibarqy/homerun-derby/internal/domain/storage"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
)

type homeRunKey struct {
	playerID int64
	gameID   int64
}

type state struct {
	players   map[int64]player.Player
	teams     map[int64]team.Team
	leagues   map[int64]league.League
	templates map[int64][]league.TemplateSlot
	slots     []roster.Slot
	homeRuns  map[homeRunKey]homerun.Event
	credits   []scoring.Credit
	jobRuns   map[string]jobrun.Run

	nextPlayerID int64
	nextTeamID   int64
	nextLeagueID int64
	nextSlotID   int64
}

func newState() *state {
	return &state{
		players:   make(map[int64]player.Player),
		teams:     make(map[int64]team.Team),
		leagues:   make(map[int64]league.League),
		templates: make(map[int64][]league.TemplateSlot),
		homeRuns:  make(map[homeRunKey]homerun.Event),
		jobRuns:   make(map[string]jobrun.Run),
	}
}

// clone copies every table. Slot end dates are replaced, never mutated in
// place, so sharing the pointers is safe.
func (s *state) clone() *state {
	out := &state{
		players:      make(map[int64]player.Player, len(s.players)),
		teams:        make(map[int64]team.Team, len(s.teams)),
		leagues:      make(map[int64]league.League, len(s.leagues)),
		templates:    make(map[int64][]league.TemplateSlot, len(s.templates)),
		slots:        append([]roster.Slot(nil), s.slots...),
		homeRuns:     make(map[homeRunKey]homerun.Event, len(s.homeRuns)),
		credits:      append([]scoring.Credit(nil), s.credits...),
		jobRuns:      make(map[string]jobrun.Run, len(s.jobRuns)),
		nextPlayerID: s.nextPlayerID,
		nextTeamID:   s.nextTeamID,
		nextLeagueID: s.nextLeagueID,
		nextSlotID:   s.nextSlotID,
	}
	for k, v := range s.players {
		out.players[k] = v
	}
	for k, v := range s.teams {
		out.teams[k] = v
	}
	for k, v := range s.leagues {
		out.leagues[k] = v
	}
	for k, v := range s.templates {
		out.templates[k] = append([]league.TemplateSlot(nil), v...)
	}
	for k, v := range s.homeRuns {
		out.homeRuns[k] = v
	}
	for k, v := range s.jobRuns {
		out.jobRuns[k] = v
	}
	return out
}

// checkCommit enforces what the database enforces with its partial unique
// index and deferred exclusion constraint.
func (s *state) checkCommit() error {
	type teamPlayer struct{ team, player int64 }
	type teamPosition struct {
		team     int64
		position roster.Position
	}

	openPlayers := make(map[teamPlayer]struct{})
	openStarters := make(map[teamPosition]int64)
	for _, slot := range s.slots {
		if !slot.IsOpen() {
			continue
		}
		key := teamPlayer{team: slot.TeamID, player: slot.PlayerID}
		if _, exists := openPlayers[key]; exists {
			return fmt.Errorf("%w: team=%d player=%d", roster.ErrSlotAlreadyOpen, slot.TeamID, slot.PlayerID)
		}
		openPlayers[key] = struct{}{}

		if !slot.IsStarter() {
			continue
		}
		pos := teamPosition{team: slot.TeamID, position: slot.Position}
		if holder, exists := openStarters[pos]; exists {
			return fmt.Errorf("%w: team=%d position=%s held by player=%d", roster.ErrPositionOccupied, slot.TeamID, slot.Position, holder)
		}
		openStarters[pos] = slot.PlayerID
	}
	return nil
}

// executor runs repository work either against the committed state or
// against a transaction's private copy.
type executor interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store is an in-process database with copy-on-write transactions. Writers
// are serialized; a transaction's changes become visible only after the
// commit checks pass.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// WithinTx ignores opts: writers already run one at a time.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error, _ ...storage.TxOption) error {
	return s.write(func(st *state) error {
		return fn(ctx, repositoriesOn(txExecutor{st: st}))
	})
}

// Repositories returns stores that see committed data; each write commits
// on its own.
func (s *Store) Repositories() storage.Repositories {
	return repositoriesOn(s)
}

func (s *Store) Standings() *StandingsRepository {
	return &StandingsRepository{exec: s}
}

func (s *Store) JobRuns() *JobRunRepository {
	return &JobRunRepository{exec: s}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.checkCommit(); err != nil {
		return err
	}
	s.state = next
	return nil
}

type txExecutor struct {
	st *state
}

func (e txExecutor) read(fn func(st *state) error) error  { return fn(e.st) }
func (e txExecutor) write(fn func(st *state) error) error { return fn(e.st) }

func repositoriesOn(exec executor) storage.Repositories {
	return storage.Repositories{
		Slots:    &RosterRepository{exec: exec},
		Players:  &PlayerRepository{exec: exec},
		Teams:    &TeamRepository{exec: exec},
		Leagues:  &LeagueRepository{exec: exec},
		HomeRuns: &HomeRunRepository{exec: exec},
		Credits:  &ScoringRepository{exec: exec},
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}
