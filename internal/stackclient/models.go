package stackclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// ListModels returns every model registered with the server.
func (c *Client) ListModels(ctx context.Context) ([]schema.Model, error) {
	var out []schema.Model
	if err := c.do(ctx, http.MethodGet, "/models", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

// ListShields returns every shield registered with the server.
func (c *Client) ListShields(ctx context.Context) ([]schema.Shield, error) {
	var out []schema.Shield
	if err := c.do(ctx, http.MethodGet, "/shields", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list shields: %w", err)
	}
	return out, nil
}
