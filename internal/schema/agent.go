package schema

// Tool definition types understood by the agents API.
const (
	ToolTypeBraveSearch     = "brave_search"
	ToolTypeSearch          = "search"
	ToolTypeWolframAlpha    = "wolfram_alpha"
	ToolTypePhotogen        = "photogen"
	ToolTypeCodeInterpreter = "code_interpreter"
	ToolTypeMemory          = "memory"
	ToolTypeFunctionCall    = "function_call"
)

// Built-in shield types.
const (
	ShieldLlamaGuard = "llama_guard"
	ShieldJailbreak  = "jailbreak_shield"
	ShieldInjection  = "injection_shield"
)

// Tool choice and prompt format values.
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"

	PromptFormatJSON        = "json"
	PromptFormatFunctionTag = "function_tag"
	PromptFormatPythonList  = "python_list"
)

// Search engines accepted by the search tool definition.
const (
	SearchEngineBing  = "bing"
	SearchEngineBrave = "brave"
)

// ShieldDefinition selects a server-side safety classifier.
type ShieldDefinition struct {
	ShieldType string `json:"shield_type"`
}

// ParamDefinition describes one parameter of a function_call tool.
type ParamDefinition struct {
	ParamType   string `json:"param_type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// MemoryBankConfig points the memory tool at a pre-populated bank.
type MemoryBankConfig struct {
	BankID string `json:"bank_id"`
	Type   string `json:"type"`
}

// ToolDefinition is one entry of AgentConfig.Tools. Only the fields relevant
// to Type are populated.
type ToolDefinition struct {
	Type string `json:"type"`

	Engine string `json:"engine,omitempty"`
	APIKey string `json:"api_key,omitempty"`

	FunctionName string                     `json:"function_name,omitempty"`
	Description  string                     `json:"description,omitempty"`
	Parameters   map[string]ParamDefinition `json:"parameters,omitempty"`

	MemoryBankConfigs []MemoryBankConfig `json:"memory_bank_configs,omitempty"`

	InputShields  []ShieldDefinition `json:"input_shields,omitempty"`
	OutputShields []ShieldDefinition `json:"output_shields,omitempty"`
}

// SamplingParams controls decoding on the server.
type SamplingParams struct {
	Strategy    string  `json:"strategy"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// DefaultSamplingParams mirrors the server's greedy default.
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{Strategy: "greedy"}
}

// AgentConfig is the body of an agent creation request.
type AgentConfig struct {
	Model                    string             `json:"model"`
	Instructions             string             `json:"instructions"`
	SamplingParams           SamplingParams     `json:"sampling_params"`
	Tools                    []ToolDefinition   `json:"tools"`
	ToolChoice               string             `json:"tool_choice"`
	ToolPromptFormat         string             `json:"tool_prompt_format"`
	InputShields             []ShieldDefinition `json:"input_shields"`
	OutputShields            []ShieldDefinition `json:"output_shields"`
	EnableSessionPersistence bool               `json:"enable_session_persistence"`
}

// HasTool reports whether a definition of the given type is configured.
func (c AgentConfig) HasTool(toolType string) bool {
	for _, t := range c.Tools {
		if t.Type == toolType {
			return true
		}
	}
	return false
}
