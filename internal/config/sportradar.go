package config

// SportradarConfig controls how we talk to the Sportradar soccer and odds APIs.
type SportradarConfig struct {
	BaseURL     string
	OddsBaseURL string
	APIKey      string
	MaxPages    int
	MinInterval Duration
}

func loadSportradar() SportradarConfig {
	return SportradarConfig{
		BaseURL:     envOrDefault(envSportradarBaseURL, ""),
		OddsBaseURL: envOrDefault(envSportradarOddsURL, ""),
		APIKey:      envOrDefault(envSportradarAPIKey, ""),
		MaxPages:    intEnvOrDefault(envSportradarMaxPages, 0),
		MinInterval: durationEnvOrDefault(envProviderMinGap, defaultProviderMinGap),
	}
}
