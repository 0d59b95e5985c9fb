package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
)

const defaultJobRunListLimit = 20

type JobRunRepository struct {
	exec executor
}

func (r *JobRunRepository) UpsertRun(_ context.Context, run jobrun.Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("job run id is required")
	}
	return r.exec.write(func(st *state) error {
		if existing, ok := st.jobRuns[run.ID]; ok {
			if run.TraceID == "" {
				run.TraceID = existing.TraceID
			}
			if run.SpanID == "" {
				run.SpanID = existing.SpanID
			}
			run.StartedAt = existing.StartedAt
		}
		summary := make(map[string]int64, len(run.Summary))
		for k, v := range run.Summary {
			summary[k] = v
		}
		run.Summary = summary
		st.jobRuns[run.ID] = run
		return nil
	})
}

func (r *JobRunRepository) ListRecent(_ context.Context, jobName string, limit int) ([]jobrun.Run, error) {
	if limit <= 0 {
		limit = defaultJobRunListLimit
	}
	name := strings.TrimSpace(jobName)

	out := make([]jobrun.Run, 0)
	err := r.exec.read(func(st *state) error {
		for _, run := range st.jobRuns {
			if name == "" || run.JobName == name {
				out = append(out, run)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
