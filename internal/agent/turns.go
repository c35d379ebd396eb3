package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/stackpilot/stackpilot/internal/eventlog"
	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
)

// TurnInput is one user message with optional attachments.
type TurnInput struct {
	Message     string
	Attachments []schema.Attachment
}

// TurnRunner is implemented by Executor.
type TurnRunner interface {
	ExecuteTurn(ctx context.Context, messages []schema.Message, attachments []schema.Attachment, emit EmitFunc) error
}

// ExecuteTurns runs inputs one after another on the same session, printing
// each user message and the rendered turn stream to w.
func ExecuteTurns(ctx context.Context, runner TurnRunner, inputs []TurnInput, logger *eventlog.Logger, w io.Writer) error {
	for i, in := range inputs {
		fmt.Fprintln(w, ansi.Bold("User> "+in.Message))
		err := runner.ExecuteTurn(ctx,
			[]schema.Message{schema.NewUserMessage(in.Message)},
			in.Attachments,
			func(ev TurnEvent) error {
				for _, le := range logger.Log(ev.Chunk, ev.ToolResponse) {
					le.Print(w)
				}
				return nil
			})
		if err != nil {
			return fmt.Errorf("turn %d: %w", i+1, err)
		}
	}
	return nil
}
