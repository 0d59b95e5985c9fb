package postgres

import (
	"database/sql"
	"time"
)

var jobRunColumns = []string{
	"id",
	"job_name",
	"triggered_by",
	"status",
	"window_start",
	"window_end",
	"summary",
	"error_message",
	"trace_id",
	"span_id",
	"started_at",
	"finished_at",
}

type jobRunTableModel struct {
	ID           string       `db:"id"`
	JobName      string       `db:"job_name"`
	Trigger      string       `db:"triggered_by"`
	Status       string       `db:"status"`
	WindowStart  sql.NullTime `db:"window_start"`
	WindowEnd    sql.NullTime `db:"window_end"`
	Summary      []byte       `db:"summary"`
	ErrorMessage string       `db:"error_message"`
	TraceID      string       `db:"trace_id"`
	SpanID       string       `db:"span_id"`
	StartedAt    time.Time    `db:"started_at"`
	FinishedAt   sql.NullTime `db:"finished_at"`
}

type jobRunInsertModel struct {
	ID           string     `db:"id"`
	JobName      string     `db:"job_name"`
	Trigger      string     `db:"triggered_by"`
	Status       string     `db:"status"`
	WindowStart  any        `db:"window_start"`
	WindowEnd    any        `db:"window_end"`
	Summary      string     `db:"summary"`
	ErrorMessage string     `db:"error_message"`
	TraceID      string     `db:"trace_id"`
	SpanID       string     `db:"span_id"`
	StartedAt    time.Time  `db:"started_at"`
	FinishedAt   *time.Time `db:"finished_at"`
}
