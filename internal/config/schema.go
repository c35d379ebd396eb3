// Package config defines the configuration schema for stackpilot.
//
// JSON keys use camelCase. Values from ~/.stackpilot/config.json are laid
// over DefaultConfig, then environment variables (and a local .env file)
// override individual credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	agentcfg "github.com/stackpilot/stackpilot/internal/config/agent"
	"github.com/stackpilot/stackpilot/internal/config/provider"
	"github.com/stackpilot/stackpilot/internal/config/server"
	"github.com/stackpilot/stackpilot/internal/config/tool"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 5000
	DefaultEndpoint = "http://localhost:5000"
)

// StackConfig locates the remote stack server.
type StackConfig struct {
	Endpoint string `json:"endpoint"`
}

// GitHubConfig holds GitHub API settings for the issue command.
type GitHubConfig struct {
	APIKey  string `json:"apiKey"`
	APIBase string `json:"apiBase,omitempty"`
}

// Config is the root configuration object, loaded from ~/.stackpilot/config.json.
type Config struct {
	Stack     StackConfig              `json:"stack"`
	GitHub    GitHubConfig             `json:"github"`
	Agents    agentcfg.AgentsConfig    `json:"agents"`
	Providers provider.ProvidersConfig `json:"providers"`
	Tools     tool.ToolsConfig         `json:"tools"`
	Server    server.ServerConfig      `json:"server"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:    agentcfg.DefaultAgentsConfig(),
		Providers: provider.DefaultProvidersConfig(),
		Tools:     tool.DefaultToolConfigs(),
		Server:    server.DefaultServerConfig(),
	}
}

// WorkspacePath returns the expanded absolute path to the agent workspace.
func (c *Config) WorkspacePath() string {
	ws := c.Agents.Defaults.Workspace
	if ws == "" {
		ws = "~/.stackpilot/workspace"
	}
	if len(ws) >= 2 && ws[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			ws = filepath.Join(home, ws[2:])
		}
	}
	return ws
}

// ResolveEndpoint picks the stack base URL. An explicit endpoint wins, then
// host/port (either may be zero to take the default), then the configured
// endpoint, then DefaultEndpoint.
func (c *Config) ResolveEndpoint(endpoint, host string, port int) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/")
	}
	if host != "" || port != 0 {
		if host == "" {
			host = DefaultHost
		}
		if port == 0 {
			port = DefaultPort
		}
		return fmt.Sprintf("http://%s:%d", host, port)
	}
	if c.Stack.Endpoint != "" {
		return strings.TrimRight(c.Stack.Endpoint, "/")
	}
	return DefaultEndpoint
}

// ServerAddr returns the playground listen address.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
