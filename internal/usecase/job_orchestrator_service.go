package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	idgen "github.com/riskibarqy/homerun-derby/internal/platform/id"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultHomeRunInterval     = time.Hour
	defaultHomeRunLookbackDays = 1
	defaultPlayerSyncAt        = "04:00"
	recentJobRunLimit          = 20
)

type JobOrchestratorConfig struct {
	HomeRunInterval     time.Duration
	HomeRunLookbackDays int
	// PlayerSyncAt is a HH:MM wall-clock time in Location.
	PlayerSyncAt string
	Location     *time.Location
}

// JobWindow bounds a date-ranged job. A zero window means the job default.
type JobWindow struct {
	From time.Time
	To   time.Time
}

func (w JobWindow) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// JobOrchestratorService runs the background jobs, records every run in
// job_runs and keeps each job from overlapping itself.
type JobOrchestratorService struct {
	ingestion *HomeRunIngestionService
	players   *PlayerSyncService
	scoring   *ScoringService
	leagues   *LeagueService
	runs      jobrun.Repository
	cfg       JobOrchestratorConfig
	syncHour  int
	syncMin   int
	guards    map[string]*atomic.Bool
	metrics   *metrics.Manager
	logger    *logging.Logger
	now       func() time.Time
	ids       idgen.Generator
}

func NewJobOrchestratorService(
	ingestion *HomeRunIngestionService,
	players *PlayerSyncService,
	scoringSvc *ScoringService,
	leagues *LeagueService,
	runs jobrun.Repository,
	cfg JobOrchestratorConfig,
	metricsManager *metrics.Manager,
	logger *logging.Logger,
) *JobOrchestratorService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HomeRunInterval <= 0 {
		cfg.HomeRunInterval = defaultHomeRunInterval
	}
	if cfg.HomeRunLookbackDays < 0 {
		cfg.HomeRunLookbackDays = defaultHomeRunLookbackDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if strings.TrimSpace(cfg.PlayerSyncAt) == "" {
		cfg.PlayerSyncAt = defaultPlayerSyncAt
	}
	hour, minute, err := parseClock(cfg.PlayerSyncAt)
	if err != nil {
		logger.Warn("invalid player sync time, using default", "value", cfg.PlayerSyncAt, "default", defaultPlayerSyncAt, "error", err)
		cfg.PlayerSyncAt = defaultPlayerSyncAt
		hour, minute, _ = parseClock(defaultPlayerSyncAt)
	}

	return &JobOrchestratorService{
		ingestion: ingestion,
		players:   players,
		scoring:   scoringSvc,
		leagues:   leagues,
		runs:      runs,
		cfg:       cfg,
		syncHour:  hour,
		syncMin:   minute,
		guards: map[string]*atomic.Bool{
			jobrun.JobHomeRunIngestion: {},
			jobrun.JobPlayerSync:       {},
			jobrun.JobReconcile:        {},
		},
		metrics:  metricsManager,
		logger:   logger,
		now:      time.Now,
		ids:      idgen.NewUUIDGenerator(),
	}
}

// RunHomeRuns ingests home runs for window, defaulting to the lookback
// window ending today.
func (s *JobOrchestratorService) RunHomeRuns(ctx context.Context, trigger jobrun.Trigger, window JobWindow) (jobrun.Run, error) {
	if s.ingestion == nil {
		return jobrun.Run{}, fmt.Errorf("%w: home run ingestion is not configured", ErrDependencyUnavailable)
	}
	if window.IsZero() {
		today := calendar.Today(s.now(), s.cfg.Location)
		window = JobWindow{From: calendar.AddDays(today, -s.cfg.HomeRunLookbackDays), To: today}
	}
	window, err := normalizeWindow(window)
	if err != nil {
		return jobrun.Run{}, err
	}

	return s.runJob(ctx, jobrun.JobHomeRunIngestion, trigger, &window, func(ctx context.Context) (map[string]int64, error) {
		summary, err := s.ingestion.Run(ctx, window.From, window.To)
		if err != nil {
			return nil, err
		}
		return map[string]int64{
			"games":           int64(summary.Games),
			"final_games":     int64(summary.FinalGames),
			"events":          int64(summary.Events),
			"home_runs":       int64(summary.HomeRuns),
			"unknown_players": int64(summary.UnknownPlayers),
			"deleted_credits": summary.Scoring.DeletedCredits,
			"credits":         int64(summary.Scoring.Credits),
		}, nil
	})
}

// RunPlayerSync refreshes the player table for season, zero meaning the
// configured season.
func (s *JobOrchestratorService) RunPlayerSync(ctx context.Context, trigger jobrun.Trigger, season int) (jobrun.Run, error) {
	if s.players == nil {
		return jobrun.Run{}, fmt.Errorf("%w: player sync is not configured", ErrDependencyUnavailable)
	}

	return s.runJob(ctx, jobrun.JobPlayerSync, trigger, nil, func(ctx context.Context) (map[string]int64, error) {
		summary, err := s.players.Sync(ctx, season)
		if err != nil {
			return nil, err
		}
		return map[string]int64{
			"season":           int64(summary.Season),
			"clubs":            int64(summary.Clubs),
			"roster_entries":   int64(summary.RosterEntries),
			"skipped_pitchers": int64(summary.SkippedPitchers),
			"created":          int64(summary.Created),
			"updated":          int64(summary.Updated),
			"unchanged":        int64(summary.Unchanged),
		}, nil
	})
}

// RunReconcile rescores window. A zero window covers the current league from
// its start date through today, capped at the league end date.
func (s *JobOrchestratorService) RunReconcile(ctx context.Context, trigger jobrun.Trigger, window JobWindow) (jobrun.Run, error) {
	if s.scoring == nil {
		return jobrun.Run{}, fmt.Errorf("%w: scoring is not configured", ErrDependencyUnavailable)
	}
	if window.IsZero() {
		resolved, err := s.leagueWindow(ctx)
		if err != nil {
			return jobrun.Run{}, err
		}
		window = resolved
	}
	window, err := normalizeWindow(window)
	if err != nil {
		return jobrun.Run{}, err
	}

	return s.runJob(ctx, jobrun.JobReconcile, trigger, &window, func(ctx context.Context) (map[string]int64, error) {
		summary, err := s.scoring.Recompute(ctx, window.From, window.To)
		if err != nil {
			return nil, err
		}
		return map[string]int64{
			"deleted_credits": summary.DeletedCredits,
			"events":          int64(summary.Events),
			"credits":         int64(summary.Credits),
		}, nil
	})
}

func (s *JobOrchestratorService) ListRuns(ctx context.Context, jobName string, limit int) ([]jobrun.Run, error) {
	jobName = strings.TrimSpace(jobName)
	if jobName != "" {
		if _, ok := s.guards[jobName]; !ok {
			return nil, fmt.Errorf("%w: unknown job %q", ErrInvalidInput, jobName)
		}
	}
	if limit <= 0 {
		limit = recentJobRunLimit
	}
	if s.runs == nil {
		return []jobrun.Run{}, nil
	}

	items, err := s.runs.ListRecent(ctx, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("list job runs: %w", err)
	}
	return items, nil
}

// Start runs the home-run job once, then keeps both schedules going until
// ctx is cancelled.
func (s *JobOrchestratorService) Start(ctx context.Context) {
	s.logger.Info("job scheduler started",
		"homerun_interval", s.cfg.HomeRunInterval.String(),
		"player_sync_at", s.cfg.PlayerSyncAt,
		"timezone", s.cfg.Location.String(),
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		s.runScheduled(ctx, jobrun.JobHomeRunIngestion, jobrun.TriggerStartup)
		s.homeRunLoop(ctx)
	})
	wg.Go(func() { s.playerSyncLoop(ctx) })
	wg.Wait()

	s.logger.Info("job scheduler stopped")
}

func (s *JobOrchestratorService) homeRunLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.HomeRunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScheduled(ctx, jobrun.JobHomeRunIngestion, jobrun.TriggerSchedule)
		}
	}
}

func (s *JobOrchestratorService) playerSyncLoop(ctx context.Context) {
	for {
		now := s.now()
		next := nextDailyRun(now, s.syncHour, s.syncMin, s.cfg.Location)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runScheduled(ctx, jobrun.JobPlayerSync, jobrun.TriggerSchedule)
		}
	}
}

// runScheduled swallows errors; they are already logged and recorded.
func (s *JobOrchestratorService) runScheduled(ctx context.Context, jobName string, trigger jobrun.Trigger) {
	var err error
	switch jobName {
	case jobrun.JobHomeRunIngestion:
		_, err = s.RunHomeRuns(ctx, trigger, JobWindow{})
	case jobrun.JobPlayerSync:
		_, err = s.RunPlayerSync(ctx, trigger, 0)
	case jobrun.JobReconcile:
		_, err = s.RunReconcile(ctx, trigger, JobWindow{})
	}
	if err != nil && ctx.Err() == nil {
		s.logger.Debug("scheduled job ended with error", "job", jobName, "trigger", string(trigger), "error", err)
	}
}

func (s *JobOrchestratorService) runJob(
	ctx context.Context,
	jobName string,
	trigger jobrun.Trigger,
	window *JobWindow,
	fn func(ctx context.Context) (map[string]int64, error),
) (jobrun.Run, error) {
	guard := s.guards[jobName]
	if !guard.CompareAndSwap(false, true) {
		s.logger.Info("job skipped, previous run still in flight", "job", jobName, "trigger", string(trigger))
		return jobrun.Run{}, fmt.Errorf("%w: job=%s", ErrJobInProgress, jobName)
	}
	defer guard.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService."+jobName,
		attribute.String("job.name", jobName),
		attribute.String("job.trigger", string(trigger)),
	)
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		recordSpanError(span, err)
		return jobrun.Run{}, fmt.Errorf("new run id: %w", err)
	}

	startedAt := s.now().UTC()
	run := jobrun.Run{
		ID:        runID,
		JobName:   jobName,
		Trigger:   trigger,
		Status:    jobrun.StatusRunning,
		Summary:   map[string]int64{},
		StartedAt: startedAt,
	}
	if window != nil {
		from, to := window.From, window.To
		run.WindowStart = &from
		run.WindowEnd = &to
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		run.TraceID = sc.TraceID().String()
		run.SpanID = sc.SpanID().String()
	}

	if err := s.recordRun(ctx, run); err != nil {
		recordSpanError(span, err)
		return jobrun.Run{}, err
	}
	s.logger.InfoContext(ctx, "job started", "job", jobName, "trigger", string(trigger), "run_id", run.ID)

	summary, jobErr := fn(ctx)
	finishedAt := s.now().UTC()
	run.FinishedAt = &finishedAt
	if summary != nil {
		run.Summary = summary
	}
	if jobErr != nil {
		run.Status = jobrun.StatusFailed
		run.ErrorMessage = jobErr.Error()
		recordSpanError(span, jobErr)
	} else {
		run.Status = jobrun.StatusCompleted
	}

	if err := s.recordRun(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "record finished job run failed", "job", jobName, "run_id", run.ID, "error", err)
	}
	s.metrics.ObserveJobRun(jobName, string(run.Status), finishedAt.Sub(startedAt))

	if jobErr != nil {
		s.logger.ErrorContext(ctx, "job failed", "job", jobName, "run_id", run.ID, "error", jobErr)
		return run, fmt.Errorf("run job %s: %w", jobName, jobErr)
	}
	s.logger.InfoContext(ctx, "job completed", "job", jobName, "run_id", run.ID, "duration", run.Duration().String())
	return run, nil
}

func (s *JobOrchestratorService) recordRun(ctx context.Context, run jobrun.Run) error {
	if s.runs == nil {
		return nil
	}
	if err := s.runs.UpsertRun(ctx, run); err != nil {
		return fmt.Errorf("record job run id=%s: %w", run.ID, err)
	}
	return nil
}

func (s *JobOrchestratorService) leagueWindow(ctx context.Context) (JobWindow, error) {
	if s.leagues == nil {
		return JobWindow{}, fmt.Errorf("%w: league lookup is not configured", ErrDependencyUnavailable)
	}
	item, err := s.leagues.ResolveLeague(ctx, 0)
	if err != nil {
		return JobWindow{}, err
	}

	today := calendar.Today(s.now(), s.cfg.Location)
	if today.Before(item.StartDate) {
		return JobWindow{}, fmt.Errorf("%w: league %q has not started", ErrInvalidInput, item.Name)
	}
	return JobWindow{From: item.StartDate, To: calendar.Min(today, item.EndDate)}, nil
}

func normalizeWindow(window JobWindow) (JobWindow, error) {
	if window.From.IsZero() || window.To.IsZero() {
		return JobWindow{}, fmt.Errorf("%w: both window dates are required", ErrInvalidInput)
	}
	window.From = calendar.Normalize(window.From)
	window.To = calendar.Normalize(window.To)
	if window.To.Before(window.From) {
		return JobWindow{}, fmt.Errorf("%w: window end %s is before start %s", ErrInvalidInput, calendar.Format(window.To), calendar.Format(window.From))
	}
	return window, nil
}

func parseClock(value string) (int, int, error) {
	at, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return at.Hour(), at.Minute(), nil
}

// nextDailyRun is the first hour:minute in loc strictly after now.
func nextDailyRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}
