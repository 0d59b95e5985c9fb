package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type RosterRepository struct {
	exec executor
}

func (r *RosterRepository) FindOpen(_ context.Context, teamID, playerID int64) (roster.Slot, bool, error) {
	var (
		out   roster.Slot
		found bool
	)
	err := r.exec.read(func(st *state) error {
		for _, slot := range st.slots {
			if slot.TeamID == teamID && slot.PlayerID == playerID && slot.IsOpen() {
				out, found = slot, true
				return nil
			}
		}
		return nil
	})
	return out, found, err
}

func (r *RosterRepository) FindOpenStarter(_ context.Context, teamID int64, position roster.Position) (roster.Slot, bool, error) {
	var (
		out   roster.Slot
		found bool
	)
	err := r.exec.read(func(st *state) error {
		for _, slot := range st.slots {
			if slot.TeamID == teamID && slot.Position == position && slot.IsStarter() && slot.IsOpen() {
				out, found = slot, true
				return nil
			}
		}
		return nil
	})
	return out, found, err
}

func (r *RosterRepository) Close(_ context.Context, slotID int64, endDate time.Time) error {
	return r.exec.write(func(st *state) error {
		for idx := range st.slots {
			if st.slots[idx].ID != slotID || !st.slots[idx].IsOpen() {
				continue
			}
			end := calendar.Normalize(endDate)
			if end.Before(st.slots[idx].EffectiveDate) {
				return fmt.Errorf("%w: end date before effective date", roster.ErrInvalidEffectiveDate)
			}
			st.slots[idx].EndDate = &end
			return nil
		}
		return fmt.Errorf("%w: open slot id=%d", roster.ErrSlotNotFound, slotID)
	})
}

func (r *RosterRepository) Insert(_ context.Context, slot roster.Slot) (roster.Slot, error) {
	err := r.exec.write(func(st *state) error {
		if _, ok := st.teams[slot.TeamID]; !ok {
			return fmt.Errorf("insert slot: unknown team id=%d", slot.TeamID)
		}
		if _, ok := st.players[slot.PlayerID]; !ok {
			return fmt.Errorf("insert slot: unknown player id=%d", slot.PlayerID)
		}
		if slot.IsOpen() {
			for _, existing := range st.slots {
				if existing.IsOpen() && existing.TeamID == slot.TeamID && existing.PlayerID == slot.PlayerID {
					return fmt.Errorf("%w: team=%d player=%d", roster.ErrSlotAlreadyOpen, slot.TeamID, slot.PlayerID)
				}
			}
		}

		st.nextSlotID++
		slot.ID = st.nextSlotID
		slot.EffectiveDate = calendar.Normalize(slot.EffectiveDate)
		st.slots = append(st.slots, slot)
		return nil
	})
	if err != nil {
		return roster.Slot{}, err
	}
	return slot, nil
}

func (r *RosterRepository) ListOpenByTeam(_ context.Context, teamID int64) ([]roster.Slot, error) {
	return r.filter(func(s roster.Slot) bool {
		return s.TeamID == teamID && s.IsOpen()
	})
}

func (r *RosterRepository) ListActiveOn(_ context.Context, teamID int64, date time.Time) ([]roster.Slot, error) {
	day := calendar.Normalize(date)
	return r.filter(func(s roster.Slot) bool {
		return s.TeamID == teamID && s.ActiveOn(day)
	})
}

func (r *RosterRepository) ListStartersOverlapping(_ context.Context, playerIDs []int64, from, to time.Time) ([]roster.Slot, error) {
	wanted := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	return r.filter(func(s roster.Slot) bool {
		_, ok := wanted[s.PlayerID]
		return ok && s.IsStarter() && s.Overlaps(from, to)
	})
}

// filter returns matches in insertion order, which is id order.
func (r *RosterRepository) filter(keep func(roster.Slot) bool) ([]roster.Slot, error) {
	out := make([]roster.Slot, 0)
	err := r.exec.read(func(st *state) error {
		for _, slot := range st.slots {
			if keep(slot) {
				out = append(out, slot)
			}
		}
		return nil
	})
	return out, err
}
