package tool

// ToolsConfig groups the keys for server-side builtins and the settings of
// the client-side custom tools.
type ToolsConfig struct {
	Brave        WebSearchConfig `json:"brave"`
	Bing         WebSearchConfig `json:"bing"`
	WolframAlpha WebSearchConfig `json:"wolframAlpha"`
	Fetch        WebFetchConfig  `json:"fetch"`
}

func DefaultToolConfigs() ToolsConfig {
	return ToolsConfig{
		Brave:        DefaultWebSearchConfig(),
		Bing:         DefaultWebSearchConfig(),
		WolframAlpha: WebSearchConfig{},
		Fetch:        DefaultWebFetchConfig(),
	}
}
