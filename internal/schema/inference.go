package schema

// ChatCompletionRequest is the body of a chat-completion request.
type ChatCompletionRequest struct {
	ModelID          string           `json:"model_id"`
	Messages         []Message        `json:"messages"`
	SamplingParams   *SamplingParams  `json:"sampling_params,omitempty"`
	Tools            []ToolDefinition `json:"tools,omitempty"`
	ToolPromptFormat string           `json:"tool_prompt_format,omitempty"`
	Stream           bool             `json:"stream"`
}

// ChatCompletionResponse is the non-streaming chat-completion result.
type ChatCompletionResponse struct {
	CompletionMessage Message `json:"completion_message"`
}

// Chat completion stream event types.
const (
	ChatEventStart    = "start"
	ChatEventProgress = "progress"
	ChatEventComplete = "complete"
)

// ChatCompletionEvent is the payload of one streamed chat-completion chunk.
type ChatCompletionEvent struct {
	EventType  string `json:"event_type"`
	Delta      string `json:"delta"`
	StopReason string `json:"stop_reason,omitempty"`
}

// ChatCompletionChunk is one SSE data frame of a streaming chat completion.
type ChatCompletionChunk struct {
	Event ChatCompletionEvent `json:"event"`
}
