// Package tools holds client-side custom tools the remote agent can call.
// The agent only sees their definitions; stackpilot runs them locally when
// a turn ends with a matching tool call.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// CustomTool is a function the model may call that runs on this side of
// the wire.
type CustomTool interface {
	Name() string
	Description() string
	ParamsDefinition() map[string]schema.ParamDefinition
	// Run answers the tool-call message(s) with tool-response message(s).
	Run(ctx context.Context, messages []schema.Message) ([]schema.Message, error)
}

// InstructionString is the one-line usage hint for a system prompt.
func InstructionString(t CustomTool) string {
	return fmt.Sprintf("Use the function '%s' to: %s", t.Name(), t.Description())
}

// ParametersForSystemPrompt renders the tool's name, description and
// parameters as a JSON object for prompt injection.
func ParametersForSystemPrompt(t CustomTool) string {
	params := t.ParamsDefinition()
	if params == nil {
		params = map[string]schema.ParamDefinition{}
	}
	data, _ := json.Marshal(map[string]any{
		"name":        t.Name(),
		"description": t.Description(),
		"parameters":  params,
	})
	return string(data)
}

// Definition returns the function_call tool definition registered with the
// agent config.
func Definition(t CustomTool) schema.ToolDefinition {
	return schema.ToolDefinition{
		Type:         schema.ToolTypeFunctionCall,
		FunctionName: t.Name(),
		Description:  t.Description(),
		Parameters:   t.ParamsDefinition(),
	}
}
