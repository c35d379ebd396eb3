// Package schema holds the wire types exchanged with the stack server.
// The server owns these schemas; this package only mirrors the fields
// stackpilot reads or writes.
package schema

import "encoding/json"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Stop reasons reported on completion messages.
const (
	StopEndOfTurn    = "end_of_turn"
	StopEndOfMessage = "end_of_message"
	StopOutOfTokens  = "out_of_tokens"
)

// ToolCall represents one function call requested by the model.
type ToolCall struct {
	CallID    string         `json:"call_id"`
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// Encode renders the call the way the model would have written it in json
// tool prompt format.
func (tc ToolCall) Encode() string {
	args := tc.Arguments
	if args == nil {
		args = map[string]any{}
	}
	data, _ := json.Marshal(map[string]any{"name": tc.ToolName, "parameters": args})
	return string(data)
}

// Attachment is a document handed to a turn alongside the messages.
// Content is a URL or a data URL.
type Attachment struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}

// Message is one entry in a conversation.
//
// Role is one of "user", "assistant", "system", "tool".
// ToolCalls and StopReason are set on assistant (completion) messages.
// CallID and ToolName are set on tool-response messages.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	StopReason string     `json:"stop_reason,omitempty"`
	CallID     string     `json:"call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewCompletionMessage(content, stopReason string, toolCalls []ToolCall) Message {
	return Message{
		Role:       RoleAssistant,
		Content:    content,
		StopReason: stopReason,
		ToolCalls:  toolCalls,
	}
}

func NewToolResponseMessage(callID, toolName, content string) Message {
	return Message{
		Role:     RoleTool,
		Content:  content,
		CallID:   callID,
		ToolName: toolName,
	}
}

// HasToolCalls reports whether the message carries at least one tool call.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }
