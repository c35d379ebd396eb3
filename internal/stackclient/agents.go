package stackclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// CreateAgent registers an agent and returns its id.
func (c *Client) CreateAgent(ctx context.Context, cfg schema.AgentConfig) (string, error) {
	body := map[string]any{"agent_config": cfg}
	var out struct {
		AgentID string `json:"agent_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/agents", nil, body, &out); err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}
	if out.AgentID == "" {
		return "", fmt.Errorf("create agent: empty agent id in response")
	}
	return out.AgentID, nil
}

// CreateSession opens a named session on an agent and returns its id.
func (c *Client) CreateSession(ctx context.Context, agentID, name string) (string, error) {
	body := map[string]any{"agent_id": agentID, "session_name": name}
	var out struct {
		SessionID string `json:"session_id"`
	}
	path := "/agents/" + url.PathEscape(agentID) + "/session"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("create session: empty session id in response")
	}
	return out.SessionID, nil
}

// CreateTurn submits a streaming turn and calls fn for every decoded chunk
// in arrival order. Returning an error from fn aborts the stream.
func (c *Client) CreateTurn(ctx context.Context, req schema.TurnRequest, fn func(schema.TurnStreamChunk) error) error {
	req.Stream = true
	path := "/agents/" + url.PathEscape(req.AgentID) + "/session/" + url.PathEscape(req.SessionID) + "/turn"
	slog.Debug("Turn submitted", "agent", req.AgentID, "session", req.SessionID, "messages", len(req.Messages))

	err := c.stream(ctx, path, req, func(data []byte) error {
		var chunk schema.TurnStreamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			slog.Debug("Skipping undecodable turn chunk", "err", err)
			return nil
		}
		return fn(chunk)
	})
	if err != nil {
		return fmt.Errorf("create turn: %w", err)
	}
	return nil
}
