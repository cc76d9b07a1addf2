package sportradar

import "time"

const (
	defaultBaseURL     = "https://api.sportradar.com/soccer/trial/v4/en"
	defaultOddsBaseURL = "https://api.sportradar.com/oddscomparison-prematch/trial/v2/en"
	defaultPageSize    = 100
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "UTC"
	defaultMaxPages    = 5
	apiKeyHeader       = "x-api-key"
)
