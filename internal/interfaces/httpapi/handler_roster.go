package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

type rosterMoveRequest struct {
	TeamID        int64  `json:"team_id" validate:"required,gt=0"`
	PlayerID      int64  `json:"player_id" validate:"required,gt=0"`
	Position      string `json:"position" validate:"required,max=3"`
	Reason        string `json:"reason" validate:"omitempty,max=100"`
	EffectiveDate string `json:"effective_date" validate:"required,max=40"`
}

type rosterSwapRequest struct {
	TeamID    int64  `json:"team_id" validate:"required,gt=0"`
	Player1ID int64  `json:"player1_id" validate:"required,gt=0"`
	Player2ID int64  `json:"player2_id" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"omitempty,max=100"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	leagueID, err := parseQueryID(r, "league_id", "leagueId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.leagueService.ListTeams(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(teamAttr(teamID))
	asOf, err := parseOptionalDate(r.URL.Query().Get("date"), "date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var entries []usecase.RosterEntry
	if asOf.IsZero() {
		entries, err = h.rosterService.CurrentRoster(ctx, teamID)
	} else {
		entries, err = h.rosterService.RosterOn(ctx, teamID, asOf)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get team roster failed", "team_id", teamID, "date", calendar.Format(asOf), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterSlotDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, rosterEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamRosterWithHomeRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRosterWithHomeRuns")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(teamAttr(teamID))

	rows, err := h.standingsService.RosterWithHomeRuns(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster with home runs failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterHomeRunsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, rosterHomeRunsToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) MovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MovePlayer")
	defer span.End()

	var req rosterMoveRequest
	if err := decodeJSONBody(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(teamAttr(req.TeamID), playerAttrs(req.PlayerID))
	effective, err := parseRequiredDate(req.EffectiveDate, "effective_date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.Move(ctx, usecase.MoveInput{
		TeamID:        req.TeamID,
		PlayerID:      req.PlayerID,
		Position:      strings.TrimSpace(req.Position),
		Reason:        req.Reason,
		EffectiveDate: effective,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "roster move failed", "team_id", req.TeamID, "player_id", req.PlayerID, "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, moveResponseDTO{
		Slot:    slotToDTO(result.Slot),
		Message: result.Message,
	})
}

func (h *Handler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPlayers")
	defer span.End()

	var req rosterSwapRequest
	if err := decodeJSONBody(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	span.SetAttributes(teamAttr(req.TeamID), playerAttrs(req.Player1ID, req.Player2ID))

	result, err := h.rosterService.Swap(ctx, usecase.SwapInput{
		TeamID:    req.TeamID,
		Player1ID: req.Player1ID,
		Player2ID: req.Player2ID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "roster swap failed", "team_id", req.TeamID, "player1_id", req.Player1ID, "player2_id", req.Player2ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	locked := result.LockedPlayers
	if locked == nil {
		locked = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, swapResponseDTO{
		First:         slotToDTO(result.First),
		Second:        slotToDTO(result.Second),
		EffectiveDate: calendar.Format(result.EffectiveDate),
		Immediate:     result.Immediate,
		LockedPlayers: locked,
		Message:       result.Message,
	})
}
