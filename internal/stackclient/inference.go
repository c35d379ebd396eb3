package stackclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// ChatCompletion runs a non-streaming chat completion.
func (c *Client) ChatCompletion(ctx context.Context, req schema.ChatCompletionRequest) (schema.ChatCompletionResponse, error) {
	req.Stream = false
	var out schema.ChatCompletionResponse
	if err := c.do(ctx, http.MethodPost, "/inference/chat-completion", nil, req, &out); err != nil {
		return schema.ChatCompletionResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	return out, nil
}

// ChatCompletionStream runs a streaming chat completion, calling fn for
// every decoded chunk.
func (c *Client) ChatCompletionStream(ctx context.Context, req schema.ChatCompletionRequest, fn func(schema.ChatCompletionChunk) error) error {
	req.Stream = true
	err := c.stream(ctx, "/inference/chat-completion", req, func(data []byte) error {
		var chunk schema.ChatCompletionChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			slog.Debug("Skipping undecodable chat chunk", "err", err)
			return nil
		}
		return fn(chunk)
	})
	if err != nil {
		return fmt.Errorf("chat completion stream: %w", err)
	}
	return nil
}
