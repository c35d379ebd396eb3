package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/stackclient"
	"github.com/stackpilot/stackpilot/internal/tools"
)

// scriptedServer replays one stream per create-turn call and records the
// messages it was sent.
type scriptedServer struct {
	streams  [][]schema.TurnStreamChunk
	requests []schema.TurnRequest
	err      error
}

func (s *scriptedServer) CreateTurn(_ context.Context, req schema.TurnRequest, fn func(schema.TurnStreamChunk) error) error {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return s.err
	}
	if len(s.streams) == 0 {
		return errors.New("no more scripted streams")
	}
	stream := s.streams[0]
	s.streams = s.streams[1:]
	for _, c := range stream {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func event(eventType string) schema.TurnStreamChunk {
	return schema.TurnStreamChunk{Event: schema.TurnResponseEvent{Payload: schema.TurnEventPayload{EventType: eventType}}}
}

func completed(out schema.Message) schema.TurnStreamChunk {
	c := event(schema.EventTurnComplete)
	c.Event.Payload.Turn = &schema.Turn{TurnID: "t", SessionID: "s", OutputMessage: out}
	return c
}

func toolCallTurn(toolName string, stopReason string) []schema.TurnStreamChunk {
	return []schema.TurnStreamChunk{
		event(schema.EventTurnStart),
		event(schema.EventStepProgress),
		completed(schema.NewCompletionMessage("", stopReason, []schema.ToolCall{
			{CallID: "call-1", ToolName: toolName, Arguments: map[string]any{"query": "q"}},
		})),
	}
}

func finalTurn(content string) []schema.TurnStreamChunk {
	return []schema.TurnStreamChunk{
		event(schema.EventTurnStart),
		completed(schema.NewCompletionMessage(content, schema.StopEndOfTurn, nil)),
	}
}

type echoImpl struct{}

func (echoImpl) Name() string                                        { return "echo" }
func (echoImpl) Description() string                                 { return "echo the query" }
func (echoImpl) ParamsDefinition() map[string]schema.ParamDefinition { return nil }
func (echoImpl) RunImpl(_ context.Context, args map[string]any) (any, error) {
	return args["query"], nil
}

// brokenTool violates the one-response contract.
type brokenTool struct{ echoImpl }

func (brokenTool) Run(context.Context, []schema.Message) ([]schema.Message, error) {
	return nil, nil
}

func collect(events *[]TurnEvent) EmitFunc {
	return func(ev TurnEvent) error {
		*events = append(*events, ev)
		return nil
	}
}

func TestExecuteTurnNoToolCalls(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{finalTurn("hello")}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	var events []TurnEvent
	err := exec.ExecuteTurn(context.Background(), []schema.Message{schema.NewUserMessage("hi")}, nil, collect(&events))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, schema.EventTurnStart, events[0].Chunk.EventType())
	assert.Equal(t, schema.EventTurnComplete, events[1].Chunk.EventType())
	assert.Equal(t, "hello", events[1].Chunk.Event.Payload.Turn.OutputMessage.Content)
	require.Len(t, srv.requests, 1)
	assert.Equal(t, "a", srv.requests[0].AgentID)
	assert.Equal(t, "s", srv.requests[0].SessionID)
}

func TestExecuteTurnOverHTTPStreams(t *testing.T) {
	var got schema.TurnRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/agents/a/session/s/turn", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range finalTurn("hello") {
			data, _ := json.Marshal(c)
			_, _ = io.WriteString(w, "data: "+string(data)+"\n\n")
		}
	}))
	defer srv.Close()

	exec := NewExecutor(stackclient.New(srv.URL), "a", "s", schema.AgentConfig{}, nil)
	var events []TurnEvent
	require.NoError(t, exec.ExecuteTurn(context.Background(), []schema.Message{schema.NewUserMessage("hi")}, nil, collect(&events)))

	assert.True(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)
	require.Len(t, events, 2)
	assert.Equal(t, "hello", events[1].Chunk.Event.Payload.Turn.OutputMessage.Content)
}

func TestExecuteTurnRunsCustomTool(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{
		toolCallTurn("echo", schema.StopEndOfTurn),
		finalTurn("done"),
	}}
	tls := tools.NewToolList(tools.NewSingleMessageTool(echoImpl{}))
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, tls)
	attachments := []schema.Attachment{{Content: "https://x", MimeType: "text/plain"}}

	var events []TurnEvent
	err := exec.ExecuteTurn(context.Background(), []schema.Message{schema.NewUserMessage("hi")}, attachments, collect(&events))
	require.NoError(t, err)

	// turn_start, step_progress, tool response, turn_start, turn_complete
	require.Len(t, events, 5)
	require.NotNil(t, events[2].ToolResponse)
	assert.Equal(t, "call-1", events[2].ToolResponse.CallID)
	assert.Equal(t, `"q"`, events[2].ToolResponse.Content)
	assert.Equal(t, schema.EventTurnComplete, events[4].Chunk.EventType())

	require.Len(t, srv.requests, 2)
	assert.Equal(t, []schema.Message{*events[2].ToolResponse}, srv.requests[1].Messages)
	assert.Equal(t, attachments, srv.requests[1].Attachments)
}

func TestExecuteTurnUnknownTool(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{
		toolCallTurn("mystery", schema.StopEndOfTurn),
		finalTurn("ok"),
	}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	var events []TurnEvent
	require.NoError(t, exec.ExecuteTurn(context.Background(), nil, nil, collect(&events)))

	resp := events[2].ToolResponse
	require.NotNil(t, resp)
	assert.Equal(t, "Unknown tool `mystery` was called. Try again with something else", resp.Content)
	assert.Equal(t, "call-1", resp.CallID)
	assert.Equal(t, schema.RoleTool, resp.Role)
}

func TestExecuteTurnOutOfTokens(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{toolCallTurn("echo", schema.StopOutOfTokens)}}
	tls := tools.NewToolList(tools.NewSingleMessageTool(echoImpl{}))
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, tls)

	var events []TurnEvent
	require.NoError(t, exec.ExecuteTurn(context.Background(), nil, nil, collect(&events)))

	require.Len(t, events, 3)
	assert.Equal(t, schema.EventTurnComplete, events[2].Chunk.EventType())
	assert.Len(t, srv.requests, 1)
}

func TestExecuteTurnIncompleteStream(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{{event(schema.EventTurnStart)}}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	var events []TurnEvent
	err := exec.ExecuteTurn(context.Background(), nil, nil, collect(&events))
	assert.ErrorIs(t, err, ErrIncompleteTurn)
	assert.Len(t, events, 1)
}

func TestExecuteTurnMaxIters(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{
		toolCallTurn("echo", schema.StopEndOfTurn),
		toolCallTurn("echo", schema.StopEndOfTurn),
		toolCallTurn("echo", schema.StopEndOfTurn),
	}}
	tls := tools.NewToolList(tools.NewSingleMessageTool(echoImpl{}))
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, tls, WithMaxIters(2))

	var events []TurnEvent
	require.NoError(t, exec.ExecuteTurn(context.Background(), nil, nil, collect(&events)))

	assert.Len(t, srv.requests, 2)
	last := events[len(events)-1]
	assert.NotNil(t, last.ToolResponse)
}

func TestExecuteTurnRemoteError(t *testing.T) {
	boom := errors.New("connection refused")
	srv := &scriptedServer{err: boom}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	err := exec.ExecuteTurn(context.Background(), nil, nil, func(TurnEvent) error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.Len(t, srv.requests, 1)
}

func TestExecuteTurnToolContractViolation(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{toolCallTurn("echo", schema.StopEndOfTurn)}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, tools.NewToolList(brokenTool{}))

	err := exec.ExecuteTurn(context.Background(), nil, nil, func(TurnEvent) error { return nil })
	assert.ErrorContains(t, err, "expected single message")
}

func TestExecuteTurnEmitErrorStops(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{finalTurn("x")}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)
	stop := errors.New("stop")

	err := exec.ExecuteTurn(context.Background(), nil, nil, func(TurnEvent) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestExecuteTurnDoesNotMutateInput(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{finalTurn("x")}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)
	in := []schema.Message{schema.NewUserMessage("hi")}

	require.NoError(t, exec.ExecuteTurn(context.Background(), in, nil, func(TurnEvent) error { return nil }))
	assert.Equal(t, "hi", in[0].Content)
	assert.Equal(t, DefaultMaxIters, exec.MaxIters())
}
