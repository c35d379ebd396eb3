package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// Impl is the body of a single-call tool: arguments in, JSON-encodable
// result out.
type Impl interface {
	Name() string
	Description() string
	ParamsDefinition() map[string]schema.ParamDefinition
	RunImpl(ctx context.Context, args map[string]any) (any, error)
}

// SingleMessageTool adapts an Impl to the CustomTool contract. It answers
// exactly one tool-call message with exactly one tool-response message.
type SingleMessageTool struct {
	Impl
}

// NewSingleMessageTool wraps impl.
func NewSingleMessageTool(impl Impl) *SingleMessageTool {
	return &SingleMessageTool{Impl: impl}
}

// Run executes the first tool call of the single message. Failures inside
// the implementation, including panics, are reported as response content.
func (t *SingleMessageTool) Run(ctx context.Context, messages []schema.Message) ([]schema.Message, error) {
	if len(messages) != 1 {
		return nil, fmt.Errorf("tool %s: expected single message, got %d", t.Name(), len(messages))
	}
	msg := messages[0]
	if !msg.HasToolCalls() {
		return nil, fmt.Errorf("tool %s: message has no tool calls", t.Name())
	}
	call := msg.ToolCalls[0]

	content, err := t.invoke(ctx, call.Arguments)
	if err != nil {
		slog.Warn("Custom tool failed", "tool", t.Name(), "err", err)
		content = "Error when running tool: " + err.Error()
	}
	return []schema.Message{schema.NewToolResponseMessage(call.CallID, call.ToolName, content)}, nil
}

func (t *SingleMessageTool) invoke(ctx context.Context, args map[string]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	if args == nil {
		args = map[string]any{}
	}
	result, err := t.RunImpl(ctx, args)
	if err != nil {
		return "", err
	}
	return encodeResult(result)
}

// encodeResult renders result as JSON, keeping non-ASCII and HTML
// characters verbatim.
func encodeResult(result any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// errMissingArg is returned by implementations for required arguments.
func errMissingArg(name string) error {
	return fmt.Errorf("missing required argument %q", name)
}

// stringArg reads a string argument. Absent or non-string values yield "".
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg reads a numeric argument decoded from JSON.
func intArg(args map[string]any, name string, def int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

var errNoWorkspace = errors.New("no workspace configured")
