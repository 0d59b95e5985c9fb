package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type HomeRunRepository struct {
	exec executor
}

func (r *HomeRunRepository) UpsertEvents(_ context.Context, events []homerun.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.exec.write(func(st *state) error {
		for _, event := range events {
			event.Date = calendar.Normalize(event.Date)
			st.homeRuns[homeRunKey{playerID: event.PlayerID, gameID: event.GameID}] = event
		}
		return nil
	})
}

func (r *HomeRunRepository) ListByDateRange(_ context.Context, from, to time.Time) ([]homerun.Event, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	out := make([]homerun.Event, 0)
	err := r.exec.read(func(st *state) error {
		for _, event := range st.homeRuns {
			if event.HomeRuns <= 0 || event.Date.Before(from) || event.Date.After(to) {
				continue
			}
			out = append(out, event)
		}
		return nil
	})
	homerun.Sort(out)
	return out, err
}
