package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	LogLevel                 logging.Level
	LogFormat                logging.Format
	StorageDriver            string
	DBURL                    string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetime        time.Duration
	DBDisablePreparedBinary  bool
	SeedDemoData             bool
	CORSAllowedOrigins       []string
	CacheEnabled             bool
	CacheTTL                 time.Duration
	LeagueTimezone           string
	LeagueLocation           *time.Location
	MLBBaseURL               string
	MLBTimeout               time.Duration
	MLBMaxRetries            int
	MLBRetryBaseDelay        time.Duration
	MLBCircuitEnabled        bool
	MLBCircuitFailureCount   int
	MLBCircuitOpenTimeout    time.Duration
	MLBCircuitHalfOpenMaxReq int
	MLBSeason                int
	MLBLeagueIDs             []int
	MLBPitcherExceptionIDs   []int64
	MLBFetchConcurrency      int
	SwapFeedTimeout          time.Duration
	JobsEnabled              bool
	JobHomeRunInterval       time.Duration
	JobHomeRunLookbackDays   int
	JobPlayerSyncAt          string
	InternalJobToken         string
	MetricsEnabled           bool
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	UptraceLogsEnabled       bool
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := string(logging.FormatJSON)
	if appEnv == EnvDev {
		logFormatDefault = string(logging.FormatConsole)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	storageDefault := StorageMemory
	if dbURL != "" {
		storageDefault = StoragePostgres
	}
	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", storageDefault))
	if err != nil {
		return Config{}, err
	}
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if dbMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	dbConnMaxLifetime, err := getEnvAsDuration("DB_CONN_MAX_LIFETIME", "30m")
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	seedDefault := strconv.FormatBool(storageDriver == StorageMemory)
	seedDemoData, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO_DATA: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	leagueTimezone := strings.TrimSpace(getEnv("LEAGUE_TIMEZONE", "America/New_York"))
	leagueLocation, err := time.LoadLocation(leagueTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_TIMEZONE: %w", err)
	}

	mlbTimeout, err := getEnvAsDuration("MLB_TIMEOUT", "10s")
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_TIMEOUT: %w", err)
	}
	if mlbTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_TIMEOUT must be > 0")
	}
	mlbMaxRetries, err := getEnvAsInt("MLB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_MAX_RETRIES: %w", err)
	}
	if mlbMaxRetries < 0 {
		return Config{}, fmt.Errorf("MLB_MAX_RETRIES must be >= 0")
	}
	mlbRetryBaseDelay, err := getEnvAsDuration("MLB_RETRY_BASE_DELAY", "300ms")
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_RETRY_BASE_DELAY: %w", err)
	}
	mlbCircuitEnabled, err := strconv.ParseBool(getEnv("MLB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_CIRCUIT_ENABLED: %w", err)
	}
	mlbCircuitFailureCount, err := getEnvAsInt("MLB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if mlbCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MLB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	mlbCircuitOpenTimeout, err := getEnvAsDuration("MLB_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if mlbCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MLB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	mlbCircuitHalfOpenMaxReq, err := getEnvAsInt("MLB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if mlbCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MLB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	mlbSeason, err := getEnvAsInt("MLB_SEASON", time.Now().In(leagueLocation).Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_SEASON: %w", err)
	}
	if mlbSeason < 1900 {
		return Config{}, fmt.Errorf("MLB_SEASON must be >= 1900")
	}
	mlbLeagueIDs, err := parseIntList(getEnv("MLB_LEAGUE_IDS", "103,104"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_LEAGUE_IDS: %w", err)
	}
	if len(mlbLeagueIDs) == 0 {
		return Config{}, fmt.Errorf("MLB_LEAGUE_IDS cannot be empty")
	}
	pitcherExceptions, err := parseInt64List(getEnv("MLB_PITCHER_EXCEPTION_IDS", "660271"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_PITCHER_EXCEPTION_IDS: %w", err)
	}
	mlbFetchConcurrency, err := getEnvAsInt("MLB_FETCH_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse MLB_FETCH_CONCURRENCY: %w", err)
	}
	if mlbFetchConcurrency <= 0 {
		return Config{}, fmt.Errorf("MLB_FETCH_CONCURRENCY must be > 0")
	}

	swapFeedTimeout, err := getEnvAsDuration("SWAP_FEED_TIMEOUT", "5s")
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAP_FEED_TIMEOUT: %w", err)
	}
	if swapFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("SWAP_FEED_TIMEOUT must be > 0")
	}

	jobsEnabled, err := strconv.ParseBool(getEnv("JOBS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOBS_ENABLED: %w", err)
	}
	jobHomeRunInterval, err := getEnvAsDuration("JOB_HOMERUN_INTERVAL", "1h")
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_HOMERUN_INTERVAL: %w", err)
	}
	if jobHomeRunInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_HOMERUN_INTERVAL must be > 0")
	}
	jobHomeRunLookbackDays, err := getEnvAsInt("JOB_HOMERUN_LOOKBACK_DAYS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_HOMERUN_LOOKBACK_DAYS: %w", err)
	}
	if jobHomeRunLookbackDays < 0 {
		return Config{}, fmt.Errorf("JOB_HOMERUN_LOOKBACK_DAYS must be >= 0")
	}
	jobPlayerSyncAt := strings.TrimSpace(getEnv("JOB_PLAYER_SYNC_AT", "04:00"))
	if _, err := time.Parse("15:04", jobPlayerSyncAt); err != nil {
		return Config{}, fmt.Errorf("parse JOB_PLAYER_SYNC_AT: expected HH:MM, got %q", jobPlayerSyncAt)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "homerun-derby-api"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                logging.ParseFormat(getEnv("APP_LOG_FORMAT", logFormatDefault)),
		StorageDriver:            storageDriver,
		DBURL:                    dbURL,
		DBMaxOpenConns:           dbMaxOpenConns,
		DBMaxIdleConns:           dbMaxIdleConns,
		DBConnMaxLifetime:        dbConnMaxLifetime,
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		SeedDemoData:             seedDemoData,
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CacheEnabled:             cacheEnabled,
		CacheTTL:                 cacheTTL,
		LeagueTimezone:           leagueTimezone,
		LeagueLocation:           leagueLocation,
		MLBBaseURL:               strings.TrimRight(strings.TrimSpace(getEnv("MLB_BASE_URL", "https://statsapi.mlb.com/api/v1")), "/"),
		MLBTimeout:               mlbTimeout,
		MLBMaxRetries:            mlbMaxRetries,
		MLBRetryBaseDelay:        mlbRetryBaseDelay,
		MLBCircuitEnabled:        mlbCircuitEnabled,
		MLBCircuitFailureCount:   mlbCircuitFailureCount,
		MLBCircuitOpenTimeout:    mlbCircuitOpenTimeout,
		MLBCircuitHalfOpenMaxReq: mlbCircuitHalfOpenMaxReq,
		MLBSeason:                mlbSeason,
		MLBLeagueIDs:             mlbLeagueIDs,
		MLBPitcherExceptionIDs:   pitcherExceptions,
		MLBFetchConcurrency:      mlbFetchConcurrency,
		SwapFeedTimeout:          swapFeedTimeout,
		JobsEnabled:              jobsEnabled,
		JobHomeRunInterval:       jobHomeRunInterval,
		JobHomeRunLookbackDays:   jobHomeRunLookbackDays,
		JobPlayerSyncAt:          jobPlayerSyncAt,
		InternalJobToken:         strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		MetricsEnabled:           metricsEnabled,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		UptraceLogsEnabled:       uptraceLogsEnabled,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.MLBBaseURL == "" {
		return Config{}, fmt.Errorf("MLB_BASE_URL cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseIntList(raw string) ([]int, error) {
	items := splitCSV(raw)
	out := make([]int, 0, len(items))
	for _, item := range items {
		value, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0, got %d", value)
		}
		out = append(out, value)
	}
	return out, nil
}

func parseInt64List(raw string) ([]int64, error) {
	items := splitCSV(raw)
	out := make([]int64, 0, len(items))
	for _, item := range items {
		value, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0, got %d", value)
		}
		out = append(out, value)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}
