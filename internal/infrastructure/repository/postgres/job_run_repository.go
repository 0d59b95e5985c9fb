package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	qb "github.com/riskibarqy/homerun-derby/internal/platform/querybuilder"
)

const defaultJobRunListLimit = 20

type JobRunRepository struct {
	db sqlx.ExtContext
}

func NewJobRunRepository(db *sqlx.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

// UpsertRun writes the run at start and overwrites it when it finishes.
func (r *JobRunRepository) UpsertRun(ctx context.Context, run jobrun.Run) error {
	runID := strings.TrimSpace(run.ID)
	if runID == "" {
		return fmt.Errorf("job run id is required")
	}

	summaryJSON, err := marshalSummary(run.Summary)
	if err != nil {
		return fmt.Errorf("marshal job run summary: %w", err)
	}

	var finishedAt *time.Time
	if run.FinishedAt != nil {
		v := run.FinishedAt.UTC()
		finishedAt = &v
	}

	model := jobRunInsertModel{
		ID:           runID,
		JobName:      run.JobName,
		Trigger:      string(run.Trigger),
		Status:       string(run.Status),
		WindowStart:  nullableDateArg(run.WindowStart),
		WindowEnd:    nullableDateArg(run.WindowEnd),
		Summary:      summaryJSON,
		ErrorMessage: run.ErrorMessage,
		TraceID:      run.TraceID,
		SpanID:       run.SpanID,
		StartedAt:    run.StartedAt.UTC(),
		FinishedAt:   finishedAt,
	}

	query, args, err := qb.InsertModel("job_runs", model, `ON CONFLICT (id)
DO UPDATE SET
    status = EXCLUDED.status,
    summary = EXCLUDED.summary,
    error_message = EXCLUDED.error_message,
    finished_at = EXCLUDED.finished_at,
    trace_id = CASE
        WHEN EXCLUDED.trace_id <> '' THEN EXCLUDED.trace_id
        ELSE job_runs.trace_id
    END,
    span_id = CASE
        WHEN EXCLUDED.span_id <> '' THEN EXCLUDED.span_id
        ELSE job_runs.span_id
    END`)
	if err != nil {
		return fmt.Errorf("build upsert job run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job run id=%s status=%s: %w", runID, run.Status, classifyError(err))
	}
	return nil
}

// ListRecent returns the newest runs first; an empty jobName lists every job.
func (r *JobRunRepository) ListRecent(ctx context.Context, jobName string, limit int) ([]jobrun.Run, error) {
	if limit <= 0 {
		limit = defaultJobRunListLimit
	}

	builder := qb.Select(jobRunColumns...).From("job_runs")
	if name := strings.TrimSpace(jobName); name != "" {
		builder.Where(qb.Eq("job_name", name))
	}
	query, args, err := builder.
		OrderBy("started_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list job runs query: %w", err)
	}

	var rows []jobRunTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list job runs: %w", err)
	}

	out := make([]jobrun.Run, 0, len(rows))
	for _, row := range rows {
		run := jobrun.Run{
			ID:           row.ID,
			JobName:      row.JobName,
			Trigger:      jobrun.Trigger(row.Trigger),
			Status:       jobrun.Status(row.Status),
			WindowStart:  nullDateFromDB(row.WindowStart),
			WindowEnd:    nullDateFromDB(row.WindowEnd),
			ErrorMessage: row.ErrorMessage,
			TraceID:      row.TraceID,
			SpanID:       row.SpanID,
			StartedAt:    row.StartedAt.UTC(),
		}
		if row.FinishedAt.Valid {
			finished := row.FinishedAt.Time.UTC()
			run.FinishedAt = &finished
		}
		if len(row.Summary) > 0 {
			if err := sonic.Unmarshal(row.Summary, &run.Summary); err != nil {
				return nil, fmt.Errorf("decode job run summary id=%s: %w", row.ID, err)
			}
		}
		out = append(out, run)
	}
	return out, nil
}

func marshalSummary(summary map[string]int64) (string, error) {
	if len(summary) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(summary)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
