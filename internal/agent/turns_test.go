package agent

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/eventlog"
	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
)

func TestExecuteTurns(t *testing.T) {
	shield := event(schema.EventStepComplete)
	shield.Event.Payload.StepType = schema.StepShieldCall
	shield.Event.Payload.StepDetails = &schema.StepDetails{}

	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{
		{shield, completed(schema.NewCompletionMessage("a", schema.StopEndOfTurn, nil))},
		finalTurn("b"),
	}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	var buf bytes.Buffer
	err := ExecuteTurns(context.Background(), exec, []TurnInput{{Message: "one"}, {Message: "two"}}, eventlog.New(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, ansi.Bold("User> one"))
	assert.Contains(t, out, ansi.Bold("User> two"))
	assert.Contains(t, out, ansi.Magenta("shield_call> No Violation"))
	require.Len(t, srv.requests, 2)
	assert.Equal(t, "two", srv.requests[1].Messages[0].Content)
}

func TestExecuteTurnsStopsOnError(t *testing.T) {
	srv := &scriptedServer{streams: [][]schema.TurnStreamChunk{{event(schema.EventTurnStart)}}}
	exec := NewExecutor(srv, "a", "s", schema.AgentConfig{}, nil)

	err := ExecuteTurns(context.Background(), exec, []TurnInput{{Message: "one"}, {Message: "two"}}, eventlog.New(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrIncompleteTurn)
	assert.Len(t, srv.requests, 1)
}
