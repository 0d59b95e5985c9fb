package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/scoring"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
)

type ScoringRepository struct {
	exec executor
}

func (r *ScoringRepository) DeleteByDateRange(_ context.Context, from, to time.Time) (int64, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	var deleted int64
	err := r.exec.write(func(st *state) error {
		kept := st.credits[:0:0]
		for _, credit := range st.credits {
			if !credit.Date.Before(from) && !credit.Date.After(to) {
				deleted++
				continue
			}
			kept = append(kept, credit)
		}
		st.credits = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *ScoringRepository) InsertCredits(_ context.Context, credits []scoring.Credit) error {
	if len(credits) == 0 {
		return nil
	}
	return r.exec.write(func(st *state) error {
		for _, credit := range credits {
			credit.Date = calendar.Normalize(credit.Date)
			st.credits = append(st.credits, credit)
		}
		return nil
	})
}

func (r *ScoringRepository) ListByDateRange(_ context.Context, from, to time.Time) ([]scoring.Credit, error) {
	from, to = calendar.Normalize(from), calendar.Normalize(to)
	out := make([]scoring.Credit, 0)
	err := r.exec.read(func(st *state) error {
		for _, credit := range st.credits {
			if !credit.Date.Before(from) && !credit.Date.After(to) {
				out = append(out, credit)
			}
		}
		return nil
	})
	return out, err
}
