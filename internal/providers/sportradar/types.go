package sportradar

const providerName = "sportradar"

type summariesResponse struct {
	Summaries []summaryResponse `json:"summaries"`
}

type summaryResponse struct {
	SportEvent       sportEventResponse       `json:"sport_event"`
	SportEventStatus sportEventStatusResponse `json:"sport_event_status"`
}

type sportEventResponse struct {
	ID          string               `json:"id"`
	StartTime   string               `json:"start_time"`
	Competitors []competitorResponse `json:"competitors"`
}

type competitorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier"`
}

type sportEventStatusResponse struct {
	Status      string         `json:"status"`
	MatchStatus string         `json:"match_status"`
	HomeScore   int            `json:"home_score"`
	AwayScore   int            `json:"away_score"`
	Clock       *clockResponse `json:"clock,omitempty"`
}

type clockResponse struct {
	Played string `json:"played"`
}

type oddsResponse struct {
	SportEvents []oddsEventResponse `json:"sport_events"`
}

type oddsEventResponse struct {
	ID          string               `json:"id"`
	StartTime   string               `json:"start_time"`
	Competitors []competitorResponse `json:"competitors"`
	Markets     []marketResponse     `json:"markets"`
}

type marketResponse struct {
	Name  string         `json:"name"`
	Books []bookResponse `json:"books"`
}

type bookResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Outcomes []outcomeResponse `json:"outcomes"`
}

type outcomeResponse struct {
	Type string `json:"type"`
	Odds string `json:"odds"`
}
