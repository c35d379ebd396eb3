package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/tools"
)

// AgentClient is the slice of the stack client needed to open sessions and
// run turns.
type AgentClient interface {
	TurnCreator
	CreateAgent(ctx context.Context, cfg schema.AgentConfig) (string, error)
	CreateSession(ctx context.Context, agentID, name string) (string, error)
}

// Factory creates agents on the server and hands back executors bound to a
// fresh session. It holds construction-time dependencies only.
type Factory struct {
	client AgentClient
}

// NewFactory constructs a Factory.
func NewFactory(client AgentClient) *Factory {
	return &Factory{client: client}
}

// NewExecutor registers cfg as a new agent, opens a session named
// Session-<uuid> and returns an executor for it.
func (f *Factory) NewExecutor(ctx context.Context, cfg schema.AgentConfig, tls *tools.ToolList, opts ...ExecutorOption) (*Executor, error) {
	agentID, err := f.client.CreateAgent(ctx, cfg)
	if err != nil {
		return nil, err
	}
	name := "Session-" + uuid.NewString()
	sessionID, err := f.client.CreateSession(ctx, agentID, name)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, err)
	}
	slog.Info("Agent session opened", "agent", agentID, "session", sessionID, "name", name)
	return NewExecutor(f.client, agentID, sessionID, cfg, tls, opts...), nil
}
