package stackclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// RunShield classifies messages with the named shield.
func (c *Client) RunShield(ctx context.Context, shieldID string, messages []schema.Message, params map[string]any) (schema.RunShieldResponse, error) {
	if params == nil {
		params = map[string]any{}
	}
	req := schema.RunShieldRequest{ShieldID: shieldID, Messages: messages, Params: params}
	var out schema.RunShieldResponse
	if err := c.do(ctx, http.MethodPost, "/safety/run-shield", nil, req, &out); err != nil {
		return schema.RunShieldResponse{}, fmt.Errorf("run shield %s: %w", shieldID, err)
	}
	return out, nil
}
