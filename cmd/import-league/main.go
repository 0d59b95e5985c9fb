package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/homerun-derby/external/mlbstats"
	"github.com/riskibarqy/homerun-derby/internal/app"
	"github.com/riskibarqy/homerun-derby/internal/config"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/resilience"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
)

func main() {
	var (
		file        = flag.String("file", "", "draft CSV with columns manager,position,player")
		leagueName  = flag.String("league", "", "league name")
		season      = flag.Int("season", 0, "season year (defaults to MLB_SEASON)")
		start       = flag.String("start", "", "league start date YYYY-MM-DD")
		end         = flag.String("end", "", "league end date YYYY-MM-DD")
		syncPlayers = flag.Bool("sync-players", false, "refresh players from the MLB feed before importing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogFormat, cfg.LogLevel).Named("import-league")
	defer func() { _ = logger.Sync() }()

	if err := run(logger, cfg, importOptions{
		file:        *file,
		leagueName:  *leagueName,
		season:      *season,
		start:       *start,
		end:         *end,
		syncPlayers: *syncPlayers,
	}); err != nil {
		logger.Error("import league failed", "error", err)
		os.Exit(1)
	}
}

type importOptions struct {
	file        string
	leagueName  string
	season      int
	start       string
	end         string
	syncPlayers bool
}

func run(logger *logging.Logger, cfg config.Config, opts importOptions) error {
	if strings.TrimSpace(opts.file) == "" {
		flag.Usage()
		return errors.New("-file is required")
	}
	startDate, err := calendar.Parse(opts.start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	endDate, err := calendar.Parse(opts.end)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}
	if opts.season <= 0 {
		opts.season = cfg.MLBSeason
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open draft file: %w", err)
	}
	defer f.Close()

	picks, err := readPicks(f)
	if err != nil {
		return fmt.Errorf("read draft file: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("importing into memory storage, the league is discarded on exit")
	}
	cfg.SeedDemoData = false
	store, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if opts.syncPlayers {
		client := mlbstats.NewClient(mlbstats.ClientConfig{
			BaseURL: cfg.MLBBaseURL,
			Timeout: cfg.MLBTimeout,
			Retry: resilience.RetryConfig{
				MaxRetries: cfg.MLBMaxRetries,
				BaseDelay:  cfg.MLBRetryBaseDelay,
				MaxDelay:   5 * time.Second,
			},
			Logger: logger,
		})
		syncSvc := usecase.NewPlayerSyncService(store.Tx, client, usecase.PlayerSyncConfig{
			Season:              opts.season,
			LeagueIDs:           cfg.MLBLeagueIDs,
			PitcherExceptionIDs: cfg.MLBPitcherExceptionIDs,
			MaxWorkers:          cfg.MLBFetchConcurrency,
		}, logger)
		summary, err := syncSvc.Sync(ctx, opts.season)
		if err != nil {
			return fmt.Errorf("sync players: %w", err)
		}
		logger.Info("players synced", "created", summary.Created, "updated", summary.Updated)
	}

	result, err := usecase.NewDraftService(store.Tx, logger).Import(ctx, usecase.DraftImportInput{
		LeagueName: opts.leagueName,
		SeasonYear: opts.season,
		StartDate:  startDate,
		EndDate:    endDate,
		Picks:      picks,
	})
	if err != nil {
		return err
	}

	for _, pick := range result.SkippedPicks {
		fmt.Fprintf(os.Stdout, "skipped: %s %s %s (player not found)\n", pick.Manager, pick.Position, pick.Player)
	}
	fmt.Fprintf(os.Stdout, "league %d %q imported: %d teams, %d slots, %d skipped\n",
		result.League.ID, result.League.Name, len(result.Teams), result.Slots, len(result.SkippedPicks))
	return nil
}

// readPicks parses manager,position,player rows. A leading header row and
// blank lines are ignored.
func readPicks(r io.Reader) ([]usecase.DraftPick, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var picks []usecase.DraftPick
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", row, len(record))
		}
		if row == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "manager") {
			continue
		}
		picks = append(picks, usecase.DraftPick{
			Manager:  strings.TrimSpace(record[0]),
			Position: strings.TrimSpace(record[1]),
			Player:   strings.TrimSpace(record[2]),
		})
	}
	if len(picks) == 0 {
		return nil, errors.New("no picks found")
	}
	return picks, nil
}
