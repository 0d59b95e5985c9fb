package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
	"github.com/riskibarqy/homerun-derby/internal/domain/standings"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	leagueService    *usecase.LeagueService
	rosterService    *usecase.RosterService
	standingsService *usecase.StandingsService
	jobOrchestrator  *usecase.JobOrchestratorService
	health           HealthChecker
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	rosterService *usecase.RosterService,
	standingsService *usecase.StandingsService,
	jobOrchestrator *usecase.JobOrchestratorService,
	health HealthChecker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		rosterService:    rosterService,
		standingsService: standingsService,
		jobOrchestrator:  jobOrchestrator,
		health:           health,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSONBody rejects unknown fields. An empty body leaves dst untouched
// when allowEmpty is set.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// parseQueryID reads the first non-empty key; missing means zero.
func parseQueryID(r *http.Request, keys ...string) (int64, error) {
	query := r.URL.Query()
	for _, key := range keys {
		raw := strings.TrimSpace(query.Get(key))
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, key, raw)
		}
		return id, nil
	}
	return 0, nil
}

func parseOptionalDate(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := calendar.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, field, err)
	}
	return parsed, nil
}

func parseRequiredDate(raw, field string) (time.Time, error) {
	parsed, err := parseOptionalDate(raw, field)
	if err != nil {
		return time.Time{}, err
	}
	if parsed.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, field)
	}
	return parsed, nil
}

type teamDTO struct {
	ID          int64  `json:"id"`
	LeagueID    int64  `json:"league_id"`
	Name        string `json:"name"`
	ManagerName string `json:"manager_name"`
}

type rosterSlotDTO struct {
	SlotID          int64   `json:"slot_id"`
	TeamID          int64   `json:"team_id"`
	PlayerID        int64   `json:"player_id"`
	MLBID           int64   `json:"mlb_id,omitempty"`
	PlayerName      string  `json:"player_name,omitempty"`
	PrimaryPosition string  `json:"primary_position,omitempty"`
	Position        string  `json:"position"`
	DraftedPosition string  `json:"drafted_position"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	EffectiveDate   string  `json:"effective_date"`
	EndDate         *string `json:"end_date"`
	// Pending is set on current-roster slots that start after today.
	Pending         bool    `json:"pending,omitempty"`
}

type moveResponseDTO struct {
	Slot    rosterSlotDTO `json:"slot"`
	Message string        `json:"message"`
}

type swapResponseDTO struct {
	First         rosterSlotDTO `json:"first"`
	Second        rosterSlotDTO `json:"second"`
	EffectiveDate string        `json:"effective_date"`
	Immediate     bool          `json:"immediate"`
	LockedPlayers []string      `json:"locked_players"`
	Message       string        `json:"message"`
}

type rosterHomeRunsDTO struct {
	rosterSlotDTO
	PositionHomeRuns int `json:"position_home_runs"`
	PlayerHomeRuns   int `json:"player_home_runs"`
}

type raceRowDTO struct {
	TeamID             int64  `json:"team_id"`
	TeamName           string `json:"team_name"`
	Date               string `json:"date"`
	DailyHomeRuns      int    `json:"daily_home_runs"`
	CumulativeHomeRuns int    `json:"cumulative_home_runs"`
}

type raceDTO struct {
	LeagueID   int64        `json:"league_id"`
	LeagueName string       `json:"league_name"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Rows       []raceRowDTO `json:"rows"`
}

type playerHomeRunCountDTO struct {
	PlayerID        int64  `json:"player_id"`
	PlayerName      string `json:"player_name"`
	TeamID          int64  `json:"team_id"`
	TeamName        string `json:"team_name"`
	Position        string `json:"position"`
	Status          string `json:"status"`
	TotalHomeRuns   int    `json:"total_home_runs"`
	CountedHomeRuns int    `json:"counted_home_runs"`
}

type jobRunDTO struct {
	ID           string           `json:"id"`
	JobName      string           `json:"job_name"`
	Trigger      string           `json:"trigger"`
	Status       string           `json:"status"`
	WindowStart  *string          `json:"window_start,omitempty"`
	WindowEnd    *string          `json:"window_end,omitempty"`
	Summary      map[string]int64 `json:"summary"`
	ErrorMessage string           `json:"error_message,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
	DurationMS   int64            `json:"duration_ms"`
	TraceID      string           `json:"trace_id,omitempty"`
	SpanID       string           `json:"span_id,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		LeagueID:    v.LeagueID,
		Name:        v.Name,
		ManagerName: v.ManagerName,
	}
}

func slotToDTO(v roster.Slot) rosterSlotDTO {
	return rosterSlotDTO{
		SlotID:          v.ID,
		TeamID:          v.TeamID,
		PlayerID:        v.PlayerID,
		Position:        string(v.Position),
		DraftedPosition: string(v.DraftedPosition),
		Status:          string(v.Status),
		Reason:          v.Reason,
		EffectiveDate:   calendar.Format(v.EffectiveDate),
		EndDate:         formatOptionalDate(v.EndDate),
	}
}

func rosterEntryToDTO(v usecase.RosterEntry) rosterSlotDTO {
	out := slotToDTO(v.Slot)
	out.MLBID = v.Player.MLBID
	out.PlayerName = v.Player.Name
	out.PrimaryPosition = v.Player.PrimaryPosition
	out.Pending = v.Pending
	return out
}

func rosterHomeRunsToDTO(v standings.RosterHomeRuns) rosterHomeRunsDTO {
	slot := slotToDTO(v.Slot)
	slot.MLBID = v.MLBID
	slot.PlayerName = v.PlayerName
	slot.PrimaryPosition = v.PrimaryPosition
	return rosterHomeRunsDTO{
		rosterSlotDTO:    slot,
		PositionHomeRuns: v.PositionHomeRuns,
		PlayerHomeRuns:   v.PlayerHomeRuns,
	}
}

func raceToDTO(v usecase.RaceResult) raceDTO {
	rows := make([]raceRowDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		rows = append(rows, raceRowDTO{
			TeamID:             row.TeamID,
			TeamName:           row.TeamName,
			Date:               calendar.Format(row.Date),
			DailyHomeRuns:      row.DailyHomeRuns,
			CumulativeHomeRuns: row.CumulativeHomeRuns,
		})
	}
	return raceDTO{
		LeagueID:   v.League.ID,
		LeagueName: v.League.Name,
		From:       calendar.Format(v.From),
		To:         calendar.Format(v.To),
		Rows:       rows,
	}
}

func playerHomeRunCountToDTO(v standings.PlayerHomeRunCount) playerHomeRunCountDTO {
	return playerHomeRunCountDTO{
		PlayerID:        v.PlayerID,
		PlayerName:      v.PlayerName,
		TeamID:          v.TeamID,
		TeamName:        v.TeamName,
		Position:        string(v.Position),
		Status:          string(v.Status),
		TotalHomeRuns:   v.TotalHomeRuns,
		CountedHomeRuns: v.CountedHomeRuns,
	}
}

func jobRunToDTO(v jobrun.Run) jobRunDTO {
	summary := v.Summary
	if summary == nil {
		summary = map[string]int64{}
	}
	return jobRunDTO{
		ID:           v.ID,
		JobName:      v.JobName,
		Trigger:      string(v.Trigger),
		Status:       string(v.Status),
		WindowStart:  formatOptionalDate(v.WindowStart),
		WindowEnd:    formatOptionalDate(v.WindowEnd),
		Summary:      summary,
		ErrorMessage: v.ErrorMessage,
		StartedAt:    v.StartedAt.UTC(),
		FinishedAt:   v.FinishedAt,
		DurationMS:   v.Duration().Milliseconds(),
		TraceID:      v.TraceID,
		SpanID:       v.SpanID,
	}
}

func formatOptionalDate(v *time.Time) *string {
	if v == nil {
		return nil
	}
	formatted := calendar.Format(*v)
	return &formatted
}
