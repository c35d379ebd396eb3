// Package eventlog renders agent turn streams as colored terminal lines.
package eventlog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
	"github.com/stackpilot/stackpilot/internal/shared/llmutils"
)

// maxContextChars bounds retrieved context shown for memory_retrieval.
const maxContextChars = 200

// LogEvent is one printable fragment. End follows Content and is "\n"
// unless the fragment continues on the same line.
type LogEvent struct {
	Role    string
	Content string
	End     string
	Color   string
}

func newEvent(role, content, color string) LogEvent {
	return LogEvent{Role: role, Content: content, End: "\n", Color: color}
}

func (e LogEvent) String() string {
	if e.Role != "" {
		return e.Role + "> " + e.Content
	}
	return e.Content
}

// Print writes the event wrapped in its color.
func (e LogEvent) Print(w io.Writer) {
	fmt.Fprint(w, ansi.Colorize(e.Color, e.String())+e.End)
}

// Logger turns executor output into log events. It keeps the previous
// chunk's step so streamed inference opens its prefix only once per step.
type Logger struct {
	stream       bool
	prevEvent    string
	prevStepType string
}

// Option configures a Logger.
type Option func(*Logger)

// WithStream selects streaming (delta by delta) or step-complete rendering.
// The default is streaming.
func WithStream(stream bool) Option {
	return func(l *Logger) { l.stream = stream }
}

func New(opts ...Option) *Logger {
	l := &Logger{stream: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log renders one executor item. Exactly one of chunk and toolResponse is
// expected to be non-nil.
func (l *Logger) Log(chunk *schema.TurnStreamChunk, toolResponse *schema.Message) []LogEvent {
	if toolResponse != nil {
		return []LogEvent{newEvent("CustomTool", toolResponse.Content, "grey")}
	}
	if chunk == nil {
		return nil
	}
	p := chunk.Event.Payload
	defer func() {
		l.prevEvent = p.EventType
		l.prevStepType = p.StepType
	}()

	switch p.EventType {
	case schema.EventTurnStart, schema.EventTurnComplete:
		return nil
	}

	switch p.StepType {
	case schema.StepShieldCall:
		return l.shieldCall(p)
	case schema.StepInference:
		if l.stream {
			return l.inferenceStream(p)
		}
		return l.inference(p)
	case schema.StepToolExecution:
		return l.toolExecution(p)
	case schema.StepMemoryRetrieval:
		return l.memoryRetrieval(p)
	}
	return nil
}

func (l *Logger) shieldCall(p schema.TurnEventPayload) []LogEvent {
	if p.EventType != schema.EventStepComplete {
		return nil
	}
	var v *schema.SafetyViolation
	if p.StepDetails != nil {
		v = p.StepDetails.Violation
	}
	if v == nil {
		return []LogEvent{newEvent(p.StepType, "No Violation", "magenta")}
	}
	return []LogEvent{newEvent(p.StepType, v.ViolationLevel+" "+v.UserMessage, "red")}
}

func (l *Logger) inferenceStream(p schema.TurnEventPayload) []LogEvent {
	switch p.EventType {
	case schema.EventStepStart:
		return []LogEvent{{Role: p.StepType, End: "", Color: "yellow"}}
	case schema.EventStepProgress:
		var out []LogEvent
		opened := l.prevStepType == schema.StepInference &&
			(l.prevEvent == schema.EventStepStart || l.prevEvent == schema.EventStepProgress)
		if !opened {
			out = append(out, LogEvent{Role: p.StepType, End: "", Color: "yellow"})
		}
		if p.ToolCallDelta != nil {
			if s, ok := p.ToolCallDelta.Content.(string); ok {
				out = append(out, LogEvent{Content: s, End: "", Color: "cyan"})
			}
			return out
		}
		return append(out, LogEvent{Content: p.TextDelta, End: "", Color: "yellow"})
	case schema.EventStepComplete:
		return []LogEvent{{End: "\n"}}
	}
	return nil
}

func (l *Logger) inference(p schema.TurnEventPayload) []LogEvent {
	if p.EventType != schema.EventStepComplete || p.StepDetails == nil || p.StepDetails.ModelResponse == nil {
		return nil
	}
	resp := p.StepDetails.ModelResponse
	content := resp.Content
	if resp.HasToolCalls() {
		content = resp.ToolCalls[0].Encode()
	}
	return []LogEvent{newEvent(p.StepType, content, "yellow")}
}

func (l *Logger) toolExecution(p schema.TurnEventPayload) []LogEvent {
	if p.EventType != schema.EventStepComplete || p.StepDetails == nil {
		return nil
	}
	var out []LogEvent
	for _, tc := range p.StepDetails.ToolCalls {
		args, _ := json.Marshal(tc.Arguments)
		out = append(out, newEvent(p.StepType, fmt.Sprintf("Tool:%s Args:%s", tc.ToolName, args), "green"))
	}
	for _, r := range p.StepDetails.ToolResponses {
		out = append(out, newEvent(p.StepType, fmt.Sprintf("Tool:%s Response:%s", r.ToolName, r.Content), "green"))
	}
	return out
}

func (l *Logger) memoryRetrieval(p schema.TurnEventPayload) []LogEvent {
	if p.EventType != schema.EventStepComplete || p.StepDetails == nil {
		return nil
	}
	d := p.StepDetails
	content := llmutils.Preview(d.InsertedContext, maxContextChars)
	return []LogEvent{newEvent(p.StepType,
		fmt.Sprintf("Retrieved context from banks: %v.\n====\n%s\n>", d.MemoryBankIDs, content), "cyan")}
}
