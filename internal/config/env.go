package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvEndpoint     = "LLAMA_STACK_ENDPOINT"
	EnvGitHubKey    = "GITHUB_API_KEY"
	EnvBraveKey     = "BRAVE_SEARCH_API_KEY"
	EnvBingKey      = "BING_SEARCH_API_KEY"
	EnvWolframKey   = "WOLFRAM_ALPHA_API_KEY"
	EnvFireworksKey = "FIREWORKS_API_KEY"
	EnvTogetherKey  = "TOGETHER_API_KEY"
	EnvOpenAIKey    = "OPENAI_API_KEY"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load env file", "path", path, "error", err)
	}
}

// ApplyEnv overrides cfg with every non-empty variable lookup reports.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	targets := map[string]*string{
		EnvEndpoint:     &cfg.Stack.Endpoint,
		EnvGitHubKey:    &cfg.GitHub.APIKey,
		EnvBraveKey:     &cfg.Tools.Brave.APIKey,
		EnvBingKey:      &cfg.Tools.Bing.APIKey,
		EnvWolframKey:   &cfg.Tools.WolframAlpha.APIKey,
		EnvFireworksKey: &cfg.Providers.Fireworks.APIKey,
		EnvTogetherKey:  &cfg.Providers.Together.APIKey,
		EnvOpenAIKey:    &cfg.Providers.OpenAI.APIKey,
	}
	for name, field := range targets {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}
}
