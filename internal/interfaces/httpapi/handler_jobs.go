package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/homerun-derby/internal/domain/jobrun"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

const maxJobRunListLimit = 100

type internalJobWindowRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,max=40"`
	EndDate   string `json:"end_date" validate:"omitempty,max=40"`
}

type internalPlayerSyncRequest struct {
	Season int `json:"season" validate:"omitempty,gte=1900,lte=2100"`
}

func (h *Handler) RunHomeRunJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunHomeRunJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	window, err := h.decodeJobWindow(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.jobOrchestrator.RunHomeRuns(ctx, jobrun.TriggerManual, window)
	h.writeJobResult(w, r, jobrun.JobHomeRunIngestion, run, err)
}

func (h *Handler) RunPlayerSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPlayerSyncJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req internalPlayerSyncRequest
	if err := decodeJSONBody(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.jobOrchestrator.RunPlayerSync(ctx, jobrun.TriggerManual, req.Season)
	h.writeJobResult(w, r, jobrun.JobPlayerSync, run, err)
}

func (h *Handler) RunReconcileJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	window, err := h.decodeJobWindow(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	run, err := h.jobOrchestrator.RunReconcile(ctx, jobrun.TriggerManual, window)
	h.writeJobResult(w, r, jobrun.JobReconcile, run, err)
}

func (h *Handler) ListJobRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobRuns")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxJobRunListLimit {
			writeError(ctx, w, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxJobRunListLimit))
			return
		}
		limit = parsed
	}

	runs, err := h.jobOrchestrator.ListRuns(ctx, query.Get("job"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list job runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]jobRunDTO, 0, len(runs))
	for _, run := range runs {
		items = append(items, jobRunToDTO(run))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) decodeJobWindow(w http.ResponseWriter, r *http.Request) (usecase.JobWindow, error) {
	var req internalJobWindowRequest
	if err := decodeJSONBody(w, r, &req, true); err != nil {
		return usecase.JobWindow{}, err
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return usecase.JobWindow{}, err
	}

	from, err := parseOptionalDate(req.StartDate, "start_date")
	if err != nil {
		return usecase.JobWindow{}, err
	}
	to, err := parseOptionalDate(req.EndDate, "end_date")
	if err != nil {
		return usecase.JobWindow{}, err
	}
	if from.IsZero() != to.IsZero() {
		return usecase.JobWindow{}, fmt.Errorf("%w: start_date and end_date must be given together", usecase.ErrInvalidInput)
	}
	return usecase.JobWindow{From: from, To: to}, nil
}

func (h *Handler) writeJobResult(w http.ResponseWriter, r *http.Request, jobName string, run jobrun.Run, err error) {
	ctx := r.Context()
	if err != nil {
		h.logger.WarnContext(ctx, "manual job failed", "job", jobName, "run_id", run.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, jobRunToDTO(run))
}
