package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if h.health != nil {
		if err := h.health.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database ping failed: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRace")
	defer span.End()

	leagueID, err := parseQueryID(r, "league_id", "leagueId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	race, err := h.standingsService.Race(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get race failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, raceToDTO(race))
}

func (h *Handler) ListPlayerHomeRunCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerHomeRunCounts")
	defer span.End()

	leagueID, err := parseQueryID(r, "league_id", "leagueId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingsService.PlayerHomeRunCounts(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player home run counts failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerHomeRunCountDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerHomeRunCountToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
