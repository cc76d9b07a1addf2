package sportradar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

// Config controls how the Sportradar client reaches the soccer and odds comparison APIs.
type Config struct {
	BaseURL     string
	OddsBaseURL string
	APIKey      string
	HTTPClient  *http.Client
	Timezone    string
	MaxPages    int
}

// Client fetches season summaries and pre-match odds from Sportradar and maps them to domain models.
type Client struct {
	baseURL     string
	oddsBaseURL string
	apiKey      string
	httpClient  httpDoer
	now         func() time.Time
	loc         *time.Location
	maxPages    int
}

// NewClient constructs a Sportradar client with the provided configuration.
func NewClient(cfg Config) *Client {
	tz := cfg.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		oddsBaseURL: normalizeBaseURL(cfg.OddsBaseURL, defaultOddsBaseURL),
		apiKey:      cfg.APIKey,
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		now:         time.Now,
		loc:         timeutil.ResolveLocation(tz),
		maxPages:    resolveMaxPages(cfg.MaxPages),
	}
}

// FetchMatches pages through the league's season summaries and keeps the ones kicking off on date.
func (c *Client) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	day := c.resolveDate(date)
	path := fmt.Sprintf("%s/seasons/%s/summaries.json", c.baseURL, url.PathEscape(league.SeasonID))

	out := make([]matches.Match, 0)
	for page := 0; page < c.maxPages; page++ {
		query := url.Values{}
		query.Set("start", strconv.Itoa(page*defaultPageSize))
		query.Set("limit", strconv.Itoa(defaultPageSize))

		var payload summariesResponse
		if err := c.get(ctx, path, query, &payload); err != nil {
			return nil, err
		}
		for _, s := range payload.Summaries {
			m := mapSummary(s, league.SeasonID)
			if timeutil.OnDate(m.StartTime, day, c.loc) {
				out = append(out, m)
			}
		}
		if len(payload.Summaries) < defaultPageSize {
			break
		}
	}
	return out, nil
}

// FetchOdds returns the competition's pre-match markets for sport events on date.
func (c *Client) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	if league.CompetitionID == "" {
		return []odds.Quote{}, nil
	}
	day := c.resolveDate(date)
	path := fmt.Sprintf("%s/competitions/%s/sport_events.json", c.oddsBaseURL, url.PathEscape(league.CompetitionID))
	query := url.Values{}
	query.Set("date", day)

	var payload oddsResponse
	if err := c.get(ctx, path, query, &payload); err != nil {
		return nil, err
	}

	out := make([]odds.Quote, 0, len(payload.SportEvents))
	for _, e := range payload.SportEvents {
		if start := parseStart(e.StartTime); !start.IsZero() && !timeutil.OnDate(start, day, c.loc) {
			continue
		}
		out = append(out, mapOddsEvent(e))
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("sportradar: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if _, err := timeutil.ParseDate(date); err == nil {
			return date
		}
	}
	return timeutil.FormatDate(c.now().In(c.loc))
}
