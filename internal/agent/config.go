package agent

import (
	"errors"
	"fmt"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/tools"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "Llama3.1-8B-Instruct"

// DefaultInstructions is the system prompt of agents built here.
const DefaultInstructions = "You are a helpful assistant"

// AttachmentBehavior decides how turn attachments reach the model.
type AttachmentBehavior string

const (
	// AttachmentRAG inserts attachments into a memory bank and retrieves.
	AttachmentRAG AttachmentBehavior = "rag"
	// AttachmentCodeInterpreter lets the model write code to process them.
	AttachmentCodeInterpreter AttachmentBehavior = "code_interpreter"
	// AttachmentAuto lets the server decide.
	AttachmentAuto AttachmentBehavior = "auto"
)

// ParseAttachmentBehavior accepts "", rag, code_interpreter or auto.
func ParseAttachmentBehavior(s string) (AttachmentBehavior, error) {
	switch b := AttachmentBehavior(s); b {
	case "", AttachmentRAG, AttachmentCodeInterpreter, AttachmentAuto:
		return b, nil
	}
	return "", fmt.Errorf("unknown attachment behavior %q (want rag, code_interpreter or auto)", s)
}

// ParsePromptFormat accepts json, function_tag or python_list. Empty means json.
func ParsePromptFormat(s string) (string, error) {
	switch s {
	case "":
		return schema.PromptFormatJSON, nil
	case schema.PromptFormatJSON, schema.PromptFormatFunctionTag, schema.PromptFormatPythonList:
		return s, nil
	}
	return "", fmt.Errorf("unknown tool prompt format %q", s)
}

// APIKeys holds credentials for server-side builtin tools.
type APIKeys struct {
	WolframAlpha string
	Brave        string
	Bing         string
}

// ErrNoSearchKey is returned when neither search engine has a key.
var ErrNoSearchKey = errors.New("must specify either Brave or Bing search API key")

// SearchToolDefinition returns the builtin search tool, preferring Bing.
func SearchToolDefinition(keys APIKeys) (schema.ToolDefinition, error) {
	switch {
	case keys.Bing != "":
		return schema.ToolDefinition{Type: schema.ToolTypeSearch, Engine: schema.SearchEngineBing, APIKey: keys.Bing}, nil
	case keys.Brave != "":
		return schema.ToolDefinition{Type: schema.ToolTypeSearch, Engine: schema.SearchEngineBrave, APIKey: keys.Brave}, nil
	}
	return schema.ToolDefinition{}, ErrNoSearchKey
}

// DefaultBuiltins returns search, wolfram_alpha, photogen and
// code_interpreter definitions.
func DefaultBuiltins(keys APIKeys) ([]schema.ToolDefinition, error) {
	search, err := SearchToolDefinition(keys)
	if err != nil {
		return nil, err
	}
	return []schema.ToolDefinition{
		search,
		{Type: schema.ToolTypeWolframAlpha, APIKey: keys.WolframAlpha},
		{Type: schema.ToolTypePhotogen},
		{Type: schema.ToolTypeCodeInterpreter},
	}, nil
}

// QuickToolConfig is the short form of an agent's tool setup.
type QuickToolConfig struct {
	CustomTools        []tools.CustomTool
	PromptFormat       string
	AttachmentBehavior AttachmentBehavior
	BuiltinTools       []schema.ToolDefinition
	// MemoryBankID points the memory tool at a pre-populated bank.
	MemoryBankID string
}

func (c QuickToolConfig) memoryToolEnabled() bool {
	if c.MemoryBankID != "" {
		return true
	}
	return c.AttachmentBehavior != "" && c.AttachmentBehavior != AttachmentCodeInterpreter
}

// MakeAgentConfig builds a full agent config from a QuickToolConfig.
// Unless safety is disabled every tool and the agent itself are guarded by
// server-side shields.
func MakeAgentConfig(model string, disableSafety bool, tc QuickToolConfig) schema.AgentConfig {
	if model == "" {
		model = DefaultModel
	}
	promptFormat := tc.PromptFormat
	if promptFormat == "" {
		promptFormat = schema.PromptFormatJSON
	}

	defs := make([]schema.ToolDefinition, 0, len(tc.BuiltinTools)+len(tc.CustomTools)+2)
	defs = append(defs, tc.BuiltinTools...)

	toolChoice := schema.ToolChoiceAuto
	if tc.AttachmentBehavior == AttachmentCodeInterpreter {
		if !hasToolType(defs, schema.ToolTypeCodeInterpreter) {
			defs = append(defs, schema.ToolDefinition{Type: schema.ToolTypeCodeInterpreter})
		}
		toolChoice = schema.ToolChoiceRequired
	}

	if tc.memoryToolEnabled() {
		banks := []schema.MemoryBankConfig{}
		if tc.MemoryBankID != "" {
			banks = append(banks, schema.MemoryBankConfig{BankID: tc.MemoryBankID, Type: schema.MemoryBankVector})
		}
		defs = append(defs, schema.ToolDefinition{Type: schema.ToolTypeMemory, MemoryBankConfigs: banks})
	}

	for _, t := range tc.CustomTools {
		defs = append(defs, tools.Definition(t))
	}

	cfg := schema.AgentConfig{
		Model:            model,
		Instructions:     DefaultInstructions,
		SamplingParams:   schema.DefaultSamplingParams(),
		Tools:            defs,
		ToolChoice:       toolChoice,
		ToolPromptFormat: promptFormat,
		InputShields:     []schema.ShieldDefinition{},
		OutputShields:    []schema.ShieldDefinition{},
	}
	if disableSafety {
		return cfg
	}

	for i := range cfg.Tools {
		cfg.Tools[i].InputShields = shields(schema.ShieldLlamaGuard)
		cfg.Tools[i].OutputShields = shields(schema.ShieldLlamaGuard, schema.ShieldInjection)
	}
	cfg.InputShields = shields(schema.ShieldLlamaGuard, schema.ShieldJailbreak)
	cfg.OutputShields = shields(schema.ShieldLlamaGuard)
	return cfg
}

func shields(types ...string) []schema.ShieldDefinition {
	out := make([]schema.ShieldDefinition, len(types))
	for i, t := range types {
		out[i] = schema.ShieldDefinition{ShieldType: t}
	}
	return out
}

func hasToolType(defs []schema.ToolDefinition, toolType string) bool {
	for _, d := range defs {
		if d.Type == toolType {
			return true
		}
	}
	return false
}
