package mlbstats

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/homerun-derby/internal/domain/feed"
	"github.com/riskibarqy/homerun-derby/internal/platform/calendar"
	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
	"github.com/riskibarqy/homerun-derby/internal/platform/metrics"
	"github.com/riskibarqy/homerun-derby/internal/platform/resilience"
	"github.com/riskibarqy/homerun-derby/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL      = "https://statsapi.mlb.com/api/v1"
	defaultTimeout      = 10 * time.Second
	maxResponseBodySize = 8 << 20
	breakerName         = "mlb-statsapi"
	scheduleFields      = "dates,date,games,gamePk,officialDate,teams,team,id,status,statusCode,abstractGameCode"
	rosterType40Man     = "40Man"
	sportIDMLB          = "1"
	gameTypeRegular     = "R"
)

var errMLBTransient = crerr.New("mlb stats transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	Logger         *logging.Logger
	Metrics        *metrics.Manager
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public MLB StatsAPI. It implements feed.Provider.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	retry      resilience.RetryConfig
	logger     *logging.Logger
	metrics    *metrics.Manager
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

var _ feed.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "homerun-derby",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retry := cfg.Retry
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		retry:      retry,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
	if cfg.CircuitBreaker.Enabled {
		client.breaker = resilience.NewCircuitBreaker(breakerName, cfg.CircuitBreaker, client.onBreakerTransition)
	}
	return client
}

func (c *Client) Schedule(ctx context.Context, from, to time.Time) ([]feed.Game, error) {
	query := url.Values{}
	query.Set("sportId", sportIDMLB)
	query.Set("startDate", calendar.Format(from))
	query.Set("endDate", calendar.Format(to))
	query.Set("gameType", gameTypeRegular)
	query.Set("fields", scheduleFields)

	var payload scheduleEnvelope
	if err := c.doJSON(ctx, "schedule", "/schedule", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch schedule %s..%s: %w", calendar.Format(from), calendar.Format(to), err)
	}

	games := make([]feed.Game, 0, 16)
	for _, day := range payload.Dates {
		for _, item := range day.Games {
			if item.GamePK <= 0 {
				continue
			}
			official, err := calendar.Parse(firstNonEmpty(item.OfficialDate, day.Date))
			if err != nil {
				c.logger.WarnContext(ctx, "skip game with unparseable date", "game_pk", item.GamePK, "error", err)
				continue
			}
			games = append(games, feed.Game{
				GamePK:       item.GamePK,
				OfficialDate: official,
				StatusCode:   strings.TrimSpace(item.Status.StatusCode),
				HomeTeamID:   item.Teams.Home.Team.ID,
				AwayTeamID:   item.Teams.Away.Team.ID,
			})
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].OfficialDate.Equal(games[j].OfficialDate) {
			return games[i].OfficialDate.Before(games[j].OfficialDate)
		}
		return games[i].GamePK < games[j].GamePK
	})
	return games, nil
}

func (c *Client) Boxscore(ctx context.Context, gamePK int64) ([]feed.BattingLine, error) {
	if gamePK <= 0 {
		return nil, fmt.Errorf("game pk must be greater than zero")
	}

	var payload boxscoreEnvelope
	path := "/game/" + strconv.FormatInt(gamePK, 10) + "/boxscore"
	if err := c.doJSON(ctx, "boxscore", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch boxscore game_pk=%d: %w", gamePK, err)
	}

	lines := make([]feed.BattingLine, 0, 52)
	for _, side := range []boxscoreTeam{payload.Teams.Home, payload.Teams.Away} {
		for _, p := range side.Players {
			if p.Person.ID <= 0 || p.Stats.Batting == nil {
				continue
			}
			lines = append(lines, feed.BattingLine{
				PlayerMLBID: p.Person.ID,
				FullName:    strings.TrimSpace(p.Person.FullName),
				HomeRuns:    p.Stats.Batting.HomeRuns,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].PlayerMLBID < lines[j].PlayerMLBID })
	return lines, nil
}

func (c *Client) TeamsBySeason(ctx context.Context, season int, leagueIDs []int) ([]feed.Club, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	ids := make([]string, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	query := url.Values{}
	query.Set("sportId", sportIDMLB)
	query.Set("season", strconv.Itoa(season))
	if len(ids) > 0 {
		query.Set("leagueIds", strings.Join(ids, ","))
	}

	var payload teamsEnvelope
	if err := c.doJSON(ctx, "teams", "/teams", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch teams season=%d: %w", season, err)
	}

	clubs := make([]feed.Club, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		if item.ID <= 0 || (item.Active != nil && !*item.Active) {
			continue
		}
		clubs = append(clubs, feed.Club{
			ID:           item.ID,
			Name:         strings.TrimSpace(item.Name),
			Abbreviation: strings.TrimSpace(item.Abbreviation),
		})
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

func (c *Client) Roster(ctx context.Context, teamID int64, season int) ([]feed.RosterEntry, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	query := url.Values{}
	query.Set("rosterType", rosterType40Man)
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}

	var payload rosterEnvelope
	path := "/teams/" + strconv.FormatInt(teamID, 10) + "/roster"
	if err := c.doJSON(ctx, "roster", path, query, &payload); err != nil {
		return nil, fmt.Errorf("fetch roster team_id=%d: %w", teamID, err)
	}

	owner := payload.TeamID
	if owner <= 0 {
		owner = teamID
	}
	entries := make([]feed.RosterEntry, 0, len(payload.Roster))
	for _, item := range payload.Roster {
		if item.Person.ID <= 0 {
			continue
		}
		entries = append(entries, feed.RosterEntry{
			PlayerMLBID:  item.Person.ID,
			FullName:     strings.TrimSpace(item.Person.FullName),
			PositionCode: positionCode(item.Position),
			TeamID:       owner,
		})
	}
	return entries, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.fetch(ctx, fullURL)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.metrics.ObserveFeedRequest(endpoint, "rejected")
			c.logger.WarnContext(ctx, "mlb circuit breaker rejected request", "endpoint", endpoint)
			return fmt.Errorf("%w: mlb stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		c.metrics.ObserveFeedRequest(endpoint, "error")
		return err
	}
	c.metrics.ObserveFeedRequest(endpoint, "ok")

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", endpoint, err)
	}
	return nil
}

type fetchResult struct {
	raw []byte
	err error
}

// fetch shares one request per URL between concurrent callers. The request
// is detached from the caller that started it and bounded by requestBudget,
// so one caller's cancellation never fails the others. Each caller still
// stops waiting when its own ctx ends.
func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan fetchResult, 1)
	go func() {
		raw, err := resilience.Do(&c.flight, fullURL, func() ([]byte, error) {
			shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestBudget())
			defer cancel()
			return resilience.Execute(c.breaker, isMLBCircuitFailure, func() ([]byte, error) {
				return c.executeRequest(shared, fullURL)
			})
		})
		done <- fetchResult{raw: raw, err: err}
	}()

	select {
	case res := <-done:
		return res.raw, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// requestBudget covers every attempt at the client timeout plus the backoff
// between them.
func (c *Client) requestBudget() time.Duration {
	budget := time.Duration(c.retry.MaxRetries+1) * c.timeout
	for attempt := 1; attempt <= c.retry.MaxRetries; attempt++ {
		budget += c.retry.Backoff(attempt)
	}
	return budget
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.retry.Backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.get(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errMLBTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errMLBTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
		}
	}

	c.logger.WarnContext(ctx, "mlb request failed", "url", fullURL, "attempts", c.retry.MaxRetries+1, "error", lastErr)
	return nil, lastErr
}

// get bounds the fasthttp call by the client timeout and the context
// deadline, whichever is sooner.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, int, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, 0, context.DeadlineExceeded
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return nil, 0, err
	}
	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

func (c *Client) onBreakerTransition(name string, from, to resilience.CircuitState) {
	c.metrics.SetBreakerOpen(name, to == resilience.CircuitStateOpen)
	c.logger.Warn("mlb circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
}

func positionCode(p position) string {
	if abbr := strings.ToUpper(strings.TrimSpace(p.Abbreviation)); abbr != "" {
		return abbr
	}
	return strings.ToUpper(strings.TrimSpace(p.Code))
}

func isMLBCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errMLBTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
