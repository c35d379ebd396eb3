// Package dependency wires core stackpilot services using go.uber.org/dig.
package dependency

import (
	"go.uber.org/dig"

	"github.com/stackpilot/stackpilot/internal/agent"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/github"
	"github.com/stackpilot/stackpilot/internal/playground"
	"github.com/stackpilot/stackpilot/internal/session"
	"github.com/stackpilot/stackpilot/internal/stackclient"
	"github.com/stackpilot/stackpilot/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg        *config.Config
	stack      *stackclient.Client
	github     *github.Client
	tools      *tools.Registry
	agents     *agent.Factory
	sessions   *session.Manager
	playground *playground.Server
}

func (c *Container) Config() *config.Config         { return c.cfg }
func (c *Container) Stack() *stackclient.Client     { return c.stack }
func (c *Container) GitHub() *github.Client         { return c.github }
func (c *Container) Tools() *tools.Registry         { return c.tools }
func (c *Container) Agents() *agent.Factory         { return c.agents }
func (c *Container) Sessions() *session.Manager     { return c.sessions }
func (c *Container) Playground() *playground.Server { return c.playground }

// DefaultModel is a named string type so dig can distinguish the configured
// model from plain strings.
type DefaultModel string

// New builds and wires all core services from cfg. cfg.Stack.Endpoint is
// expected to hold the already resolved base URL.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(resolveDefaultModel); err != nil {
		return nil, err
	}
	if err := d.Provide(newStackClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newGitHubClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentFactory); err != nil {
		return nil, err
	}
	if err := d.Provide(newSessionManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newPlayground); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		stack *stackclient.Client,
		gh *github.Client,
		reg *tools.Registry,
		agents *agent.Factory,
		sessions *session.Manager,
		pg *playground.Server,
	) {
		result = &Container{
			cfg:        cfg,
			stack:      stack,
			github:     gh,
			tools:      reg,
			agents:     agents,
			sessions:   sessions,
			playground: pg,
		}
	})
	return result, err
}

func resolveDefaultModel(cfg *config.Config) DefaultModel {
	m := cfg.Agents.Defaults.Model
	if m == "" {
		m = agent.DefaultModel
	}
	return DefaultModel(m)
}

func newStackClient(cfg *config.Config) *stackclient.Client {
	endpoint := cfg.ResolveEndpoint("", "", 0)
	return stackclient.New(endpoint, stackclient.WithProviderData(cfg.Providers.ProviderData()))
}

func newGitHubClient(cfg *config.Config) *github.Client {
	return github.NewClient(cfg.GitHub.APIKey, cfg.GitHub.APIBase)
}

func newToolRegistry(cfg *config.Config) *tools.Registry {
	return tools.DefaultRegistry(tools.Settings{
		BraveAPIKey:   cfg.Tools.Brave.APIKey,
		SearchTopK:    cfg.Tools.Brave.MaxResults,
		FetchMaxChars: cfg.Tools.Fetch.MaxChars,
		Workspace:     cfg.WorkspacePath(),
	})
}

func newAgentFactory(stack *stackclient.Client) *agent.Factory {
	return agent.NewFactory(stack)
}

func newSessionManager() (*session.Manager, error) {
	return session.NewManager(config.SessionsDir())
}

func newPlayground(stack *stackclient.Client, model DefaultModel) *playground.Server {
	return playground.New(stack, string(model))
}
