package jobrun

import "time"

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
)

// Known job names.
const (
	JobHomeRunIngestion = "homeruns"
	JobPlayerSync       = "players"
	JobReconcile        = "reconcile"
)

// Run records one execution of a background job.
type Run struct {
	ID           string
	JobName      string
	Trigger      Trigger
	Status       Status
	WindowStart  *time.Time
	WindowEnd    *time.Time
	Summary      map[string]int64
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
	TraceID      string
	SpanID       string
}

func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
