package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/config"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "homerun-derby-api",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StorageDriver:      config.StorageMemory,
		SeedDemoData:       true,
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		LeagueLocation:     time.UTC,
		MLBBaseURL:         "http://127.0.0.1:1",
		MLBTimeout:         time.Second,
		MLBSeason:          2025,
		JobHomeRunInterval: time.Hour,
		JobPlayerSyncAt:    "04:00",
		MetricsEnabled:     true,
	}
}

func TestNew_MemoryServesSeededTeams(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Dana's Squad") {
		t.Fatalf("expected seeded team in body: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected metrics status: %d", rec.Code)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestOpenStorage_MemoryWithoutSeedIsEmpty(t *testing.T) {
	cfg := memoryConfig()
	cfg.SeedDemoData = false

	store, err := OpenStorage(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	defer store.Close()

	teams, err := store.Repos.Teams.List(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected no teams, got %d", len(teams))
	}
	if err := store.Health.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
