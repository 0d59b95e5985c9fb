package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/homerun-derby/external/mlbstats"
	"github.com/riskibarqy/homerun-derby/internal/config"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/homerun-derby/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/homerun-derby/internal/platform/cache"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"github.com/riskibarqy/homerun-derby/internal/platform/resilience"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

const metricsNamespace = "homerun_derby"

// App is the assembled API process.
type App struct {
	Server  *http.Server
	Jobs    *usecase.JobOrchestratorService
	Storage *Storage
	Metrics *metrics.Manager
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Storage.Close()
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metricsManager *metrics.Manager
	if cfg.MetricsEnabled {
		metricsManager = metrics.NewManager(
			metrics.WithNamespace(metricsNamespace),
			metrics.WithProcessMetrics(true),
		)
	}

	store, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos := store.Repos
	if cfg.CacheEnabled {
		readCache := basecache.NewStore(cfg.CacheTTL)
		repos.Leagues = cache.NewLeagueRepository(repos.Leagues, readCache)
		repos.Teams = cache.NewTeamRepository(repos.Teams, readCache)
	}

	mlbClient := mlbstats.NewClient(mlbstats.ClientConfig{
		BaseURL: cfg.MLBBaseURL,
		Timeout: cfg.MLBTimeout,
		Retry: resilience.RetryConfig{
			MaxRetries: cfg.MLBMaxRetries,
			BaseDelay:  cfg.MLBRetryBaseDelay,
			MaxDelay:   resilience.DefaultRetryConfig().MaxDelay,
		},
		Logger:  logger.Named("mlbstats"),
		Metrics: metricsManager,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MLBCircuitEnabled,
			FailureThreshold: cfg.MLBCircuitFailureCount,
			OpenTimeout:      cfg.MLBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MLBCircuitHalfOpenMaxReq,
		},
	})

	leagueSvc := usecase.NewLeagueService(repos.Leagues, repos.Teams)
	rosterSvc := usecase.NewRosterService(store.Tx, repos, mlbClient, usecase.RosterServiceConfig{
		Location:    cfg.LeagueLocation,
		FeedTimeout: cfg.SwapFeedTimeout,
	}, metricsManager, logger)
	standingsSvc := usecase.NewStandingsService(leagueSvc, repos.Teams, store.Standings, cfg.LeagueLocation, logger)
	scoringSvc := usecase.NewScoringService(store.Tx, metricsManager, logger)
	ingestionSvc := usecase.NewHomeRunIngestionService(store.Tx, repos, mlbClient, scoringSvc, usecase.HomeRunIngestionConfig{
		FetchConcurrency: cfg.MLBFetchConcurrency,
	}, metricsManager, logger)
	playerSyncSvc := usecase.NewPlayerSyncService(store.Tx, mlbClient, usecase.PlayerSyncConfig{
		Season:              cfg.MLBSeason,
		LeagueIDs:           cfg.MLBLeagueIDs,
		PitcherExceptionIDs: cfg.MLBPitcherExceptionIDs,
		MaxWorkers:          cfg.MLBFetchConcurrency,
	}, logger)
	jobs := usecase.NewJobOrchestratorService(
		ingestionSvc,
		playerSyncSvc,
		scoringSvc,
		leagueSvc,
		store.JobRuns,
		usecase.JobOrchestratorConfig{
			HomeRunInterval:     cfg.JobHomeRunInterval,
			HomeRunLookbackDays: cfg.JobHomeRunLookbackDays,
			PlayerSyncAt:        cfg.JobPlayerSyncAt,
			Location:            cfg.LeagueLocation,
		},
		metricsManager,
		logger.Named("jobs"),
	)

	handler := httpapi.NewHandler(leagueSvc, rosterSvc, standingsSvc, jobs, store.Health, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		Metrics:            metricsManager,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:  server,
		Jobs:    jobs,
		Storage: store,
		Metrics: metricsManager,
	}, nil
}
