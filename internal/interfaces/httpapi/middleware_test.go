package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/readyz", want: false},
		{path: "/metrics", want: false},
		{path: "/v1/race", want: true},
		{path: "/v1/teams/1/roster", want: true},
		{path: "/internal/jobs/homeruns", want: true},
	}
	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Run("echoes configured origin", func(t *testing.T) {
		handler := CORS([]string{" https://derby.example.com ", ""}, okHandler())
		req := httptest.NewRequest(http.MethodGet, "/v1/race", nil)
		req.Header.Set("Origin", "https://derby.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://derby.example.com" {
			t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
		}
		if got := rec.Header().Get("Vary"); got != "Origin" {
			t.Fatalf("expected Vary: Origin, got %q", got)
		}
	})

	t.Run("wildcard preflight exposes job token header", func(t *testing.T) {
		handler := CORS([]string{"*"}, okHandler())
		req := httptest.NewRequest(http.MethodOptions, "/internal/jobs/reconcile", nil)
		req.Header.Set("Origin", "https://ops.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type,Accept,"+internalJobTokenHeader {
			t.Fatalf("unexpected Access-Control-Allow-Headers: %q", got)
		}
	})

	t.Run("ignores other origins", func(t *testing.T) {
		handler := CORS([]string{"https://derby.example.com"}, okHandler())
		req := httptest.NewRequest(http.MethodGet, "/v1/race", nil)
		req.Header.Set("Origin", "https://elsewhere.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected request to pass through, got %d", rec.Code)
		}
	})
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "not configured", configured: " ", provided: "secret", wantStatus: http.StatusServiceUnavailable},
		{name: "missing header", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", provided: "guess", wantStatus: http.StatusUnauthorized},
		{name: "valid token", configured: "secret", provided: " secret ", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireInternalJobToken(tt.configured, okHandler())
			req := httptest.NewRequest(http.MethodPost, "/internal/jobs/homeruns", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d body=%s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequestObservability_LabelsMatchedRoute(t *testing.T) {
	mux := http.NewServeMux()
	var seen string
	mux.Handle("GET /v1/teams/{teamID}/roster", recordRoute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if holder, ok := routeHolderFromContext(r.Context()); ok {
			seen = holder.label()
		}
		_, _ = w.Write([]byte("[]"))
	})))
	handler := RequestObservability(logging.NewNop(), nil, mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams/3/roster", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if seen != "GET /v1/teams/{teamID}/roster" {
		t.Fatalf("unexpected route label %q", seen)
	}
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	if got := rec.statusCode(); got != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", got)
	}
	rec.WriteHeader(http.StatusConflict)
	rec.WriteHeader(http.StatusInternalServerError)
	if got := rec.statusCode(); got != http.StatusConflict {
		t.Fatalf("expected first status to stick, got %d", got)
	}
}
