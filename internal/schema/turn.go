package schema

// Turn stream event types.
const (
	EventTurnStart    = "turn_start"
	EventStepStart    = "step_start"
	EventStepProgress = "step_progress"
	EventStepComplete = "step_complete"
	EventTurnComplete = "turn_complete"
)

// Step types reported inside a turn.
const (
	StepInference       = "inference"
	StepToolExecution   = "tool_execution"
	StepShieldCall      = "shield_call"
	StepMemoryRetrieval = "memory_retrieval"
)

// TurnRequest is the body of a create-turn request.
type TurnRequest struct {
	AgentID     string       `json:"agent_id"`
	SessionID   string       `json:"session_id"`
	Messages    []Message    `json:"messages"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Stream      bool         `json:"stream"`
}

// ToolCallDelta is a partial tool call streamed during inference.
type ToolCallDelta struct {
	Content     any    `json:"content"`
	ParseStatus string `json:"parse_status,omitempty"`
}

// ToolResponse is the result of a server-side tool execution.
type ToolResponse struct {
	CallID   string `json:"call_id"`
	ToolName string `json:"tool_name"`
	Content  string `json:"content"`
}

// StepDetails describes a completed step. Which fields are set depends on
// the step type.
type StepDetails struct {
	StepID   string `json:"step_id,omitempty"`
	StepType string `json:"step_type,omitempty"`

	// inference
	ModelResponse *Message `json:"model_response,omitempty"`

	// tool_execution
	ToolCalls     []ToolCall     `json:"tool_calls,omitempty"`
	ToolResponses []ToolResponse `json:"tool_responses,omitempty"`

	// shield_call
	Violation *SafetyViolation `json:"violation,omitempty"`

	// memory_retrieval
	MemoryBankIDs   []string `json:"memory_bank_ids,omitempty"`
	InsertedContext string   `json:"inserted_context,omitempty"`
}

// Turn is the record returned with turn_complete.
type Turn struct {
	TurnID        string        `json:"turn_id"`
	SessionID     string        `json:"session_id"`
	InputMessages []Message     `json:"input_messages,omitempty"`
	Steps         []StepDetails `json:"steps,omitempty"`
	OutputMessage Message       `json:"output_message"`
}

// TurnEventPayload is the discriminated payload of a turn stream event.
type TurnEventPayload struct {
	EventType string `json:"event_type"`
	StepType  string `json:"step_type,omitempty"`
	StepID    string `json:"step_id,omitempty"`

	TextDelta     string         `json:"model_response_text_delta,omitempty"`
	ToolCallDelta *ToolCallDelta `json:"tool_call_delta,omitempty"`
	StepDetails   *StepDetails   `json:"step_details,omitempty"`
	Turn          *Turn          `json:"turn,omitempty"`
}

// TurnResponseEvent wraps a payload.
type TurnResponseEvent struct {
	Payload TurnEventPayload `json:"payload"`
}

// TurnStreamChunk is one SSE data frame of a streaming turn.
type TurnStreamChunk struct {
	Event TurnResponseEvent `json:"event"`
}

// EventType is a shortcut for c.Event.Payload.EventType.
func (c TurnStreamChunk) EventType() string { return c.Event.Payload.EventType }

// StepType is a shortcut for c.Event.Payload.StepType.
func (c TurnStreamChunk) StepType() string { return c.Event.Payload.StepType }
