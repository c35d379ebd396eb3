// Package agent builds agent configs and drives remote agent sessions,
// running client-side custom tools between turns.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/llmutils"
	"github.com/stackpilot/stackpilot/internal/tools"
)

// DefaultMaxIters bounds the number of create-turn round trips per turn.
const DefaultMaxIters = 5

// ErrIncompleteTurn is returned when a turn stream ends without a
// turn_complete event.
var ErrIncompleteTurn = errors.New("turn stream ended without turn_complete")

// TurnCreator is the slice of the stack client the executor needs.
type TurnCreator interface {
	CreateTurn(ctx context.Context, req schema.TurnRequest, fn func(schema.TurnStreamChunk) error) error
}

// TurnEvent is one item the executor hands to its caller: either a chunk
// relayed from the server or a tool response produced locally.
type TurnEvent struct {
	Chunk        *schema.TurnStreamChunk
	ToolResponse *schema.Message
}

// EmitFunc receives executor output in order. A non-nil error stops the turn.
type EmitFunc func(TurnEvent) error

// Executor drives one agent session, running custom tools locally whenever
// the remote agent ends a turn with a call to one of them.
type Executor struct {
	client    TurnCreator
	agentID   string
	sessionID string
	config    schema.AgentConfig
	tools     *tools.ToolList
	maxIters  int
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithMaxIters overrides DefaultMaxIters. Values below 1 are ignored.
func WithMaxIters(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.maxIters = n
		}
	}
}

// NewExecutor returns an executor bound to an existing agent session.
func NewExecutor(
	client TurnCreator,
	agentID, sessionID string,
	cfg schema.AgentConfig,
	tls *tools.ToolList,
	opts ...ExecutorOption,
) *Executor {
	if tls == nil {
		tls = tools.NewToolList()
	}
	e := &Executor{
		client:    client,
		agentID:   agentID,
		sessionID: sessionID,
		config:    cfg,
		tools:     tls,
		maxIters:  DefaultMaxIters,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) AgentID() string            { return e.agentID }
func (e *Executor) SessionID() string          { return e.sessionID }
func (e *Executor) Config() schema.AgentConfig { return e.config }
func (e *Executor) Tools() *tools.ToolList     { return e.tools }
func (e *Executor) MaxIters() int              { return e.maxIters }

// ExecuteTurn submits messages and relays the streamed turn to emit. When
// the turn ends with a call to a custom tool, the tool runs here and its
// response is submitted as the next turn, up to MaxIters round trips.
func (e *Executor) ExecuteTurn(ctx context.Context, messages []schema.Message, attachments []schema.Attachment, emit EmitFunc) error {
	current := make([]schema.Message, len(messages))
	copy(current, messages)

	for iter := 0; iter < e.maxIters; iter++ {
		var completion *schema.TurnStreamChunk
		req := schema.TurnRequest{
			AgentID:     e.agentID,
			SessionID:   e.sessionID,
			Messages:    current,
			Attachments: attachments,
		}
		err := e.client.CreateTurn(ctx, req, func(chunk schema.TurnStreamChunk) error {
			if chunk.EventType() == schema.EventTurnComplete {
				c := chunk
				completion = &c
				return nil
			}
			return emit(TurnEvent{Chunk: &chunk})
		})
		if err != nil {
			return err
		}
		if completion == nil || completion.Event.Payload.Turn == nil {
			return ErrIncompleteTurn
		}

		out := completion.Event.Payload.Turn.OutputMessage
		if !out.HasToolCalls() || out.StopReason == schema.StopOutOfTokens {
			return emit(TurnEvent{Chunk: completion})
		}

		next, err := e.runTool(ctx, out)
		if err != nil {
			return err
		}
		if err := emit(TurnEvent{ToolResponse: &next}); err != nil {
			return err
		}
		current = []schema.Message{next}
	}

	slog.Warn("Turn stopped after max iterations", "agent", e.agentID, "session", e.sessionID, "max_iters", e.maxIters)
	return nil
}

// runTool answers the first tool call of msg.
func (e *Executor) runTool(ctx context.Context, msg schema.Message) (schema.Message, error) {
	call := msg.ToolCalls[0]
	tool := e.tools.Get(call.ToolName)
	if tool == nil {
		slog.Info("Unknown tool called", "tool", call.ToolName)
		return schema.NewToolResponseMessage(call.CallID, call.ToolName,
			fmt.Sprintf("Unknown tool `%s` was called. Try again with something else", call.ToolName)), nil
	}

	slog.Info("Custom tool call", "call", llmutils.DescribeCall(call), "call_id", call.CallID)
	results, err := tool.Run(ctx, []schema.Message{msg})
	if err != nil {
		return schema.Message{}, fmt.Errorf("run tool %s: %w", call.ToolName, err)
	}
	if len(results) != 1 {
		return schema.Message{}, fmt.Errorf("run tool %s: expected single message, got %d", call.ToolName, len(results))
	}
	return results[0], nil
}
