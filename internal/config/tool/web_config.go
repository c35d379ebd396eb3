package tool

// WebSearchConfig configures one search backend.
type WebSearchConfig struct {
	APIKey     string `json:"apiKey"`
	MaxResults int    `json:"maxResults"`
}

func DefaultWebSearchConfig() WebSearchConfig {
	return WebSearchConfig{MaxResults: 3}
}

// WebFetchConfig configures the web_fetch custom tool.
type WebFetchConfig struct {
	MaxChars int `json:"maxChars"`
}

func DefaultWebFetchConfig() WebFetchConfig {
	return WebFetchConfig{MaxChars: 20000}
}
