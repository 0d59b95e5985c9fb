package httpapi

import (
	"net/http"

	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
)

func handle(mux *http.ServeMux, pattern string, handler http.Handler) {
	mux.Handle(pattern, recordRoute(handler))
}

func handleFunc(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	handle(mux, pattern, handler)
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsManager *metrics.Manager) {
	handleFunc(mux, "GET /healthz", handler.Healthz)
	handleFunc(mux, "GET /v1/health", handler.Healthz)
	if metricsManager != nil {
		handle(mux, "GET /metrics", metricsManager.Handler())
	}
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	handleFunc(mux, "GET /v1/teams", handler.ListTeams)
	handleFunc(mux, "GET /v1/teams/{teamID}/roster", handler.GetTeamRoster)
	handleFunc(mux, "GET /v1/teams/{teamID}/roster-with-hrs", handler.GetTeamRosterWithHomeRuns)
	handleFunc(mux, "POST /v1/roster/move", handler.MovePlayer)
	handleFunc(mux, "POST /v1/roster/swap", handler.SwapPlayers)
	handleFunc(mux, "GET /v1/race", handler.GetRace)
	handleFunc(mux, "GET /v1/players/hr-counts", handler.ListPlayerHomeRunCounts)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	handle(mux, "POST /v1/internal/jobs/homeruns", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunHomeRunJob)))
	handle(mux, "POST /v1/internal/jobs/players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPlayerSyncJob)))
	handle(mux, "POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileJob)))
	handle(mux, "GET /v1/internal/jobs/runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListJobRuns)))
}
