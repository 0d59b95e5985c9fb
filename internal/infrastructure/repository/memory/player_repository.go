package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/player"
)

type PlayerRepository struct {
	exec executor
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	var (
		out   player.Player
		found bool
	)
	err := r.exec.read(func(st *state) error {
		out, found = st.players[playerID]
		return nil
	})
	return out, found, err
}

func (r *PlayerRepository) ListByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	err := r.exec.read(func(st *state) error {
		seen := make(map[int64]struct{}, len(playerIDs))
		for _, id := range playerIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if p, ok := st.players[id]; ok {
				out = append(out, p)
			}
		}
		return nil
	})
	sortPlayers(out)
	return out, err
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	var out []player.Player
	err := r.exec.read(func(st *state) error {
		out = make([]player.Player, 0, len(st.players))
		for _, p := range st.players {
			out = append(out, p)
		}
		return nil
	})
	sortPlayers(out)
	return out, err
}

func (r *PlayerRepository) FindByName(_ context.Context, name string) (player.Player, bool, error) {
	key := player.NormalizeName(name)
	var (
		out   player.Player
		found bool
	)
	err := r.exec.read(func(st *state) error {
		for _, p := range st.players {
			if player.NormalizeName(p.Name) != key {
				continue
			}
			if !found || p.ID < out.ID {
				out, found = p, true
			}
		}
		return nil
	})
	return out, found, err
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	err := r.exec.write(func(st *state) error {
		for _, existing := range st.players {
			if existing.MLBID == p.MLBID {
				return fmt.Errorf("player mlb_id=%d already exists", p.MLBID)
			}
		}
		st.nextPlayerID++
		p.ID = st.nextPlayerID
		p.UpdatedAt = time.Now().UTC()
		st.players[p.ID] = p
		return nil
	})
	if err != nil {
		return player.Player{}, err
	}
	return p, nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	return r.exec.write(func(st *state) error {
		if _, ok := st.players[p.ID]; !ok {
			return fmt.Errorf("update player: unknown id=%d", p.ID)
		}
		p.UpdatedAt = time.Now().UTC()
		st.players[p.ID] = p
		return nil
	})
}

func sortPlayers(players []player.Player) {
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
}
