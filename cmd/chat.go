package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/session"
	"github.com/stackpilot/stackpilot/internal/shared/cmdutils"
	"github.com/stackpilot/stackpilot/internal/shared/llmutils"
	"github.com/stackpilot/stackpilot/internal/stackclient"
)

var (
	chatMessage string
	chatSession string
	chatModel   string
	chatSystem  string
	chatStream  bool
	chatHistory int
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a model through the inference API",
	RunE:  runChat,
}

var chatSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List persisted chat sessions",
	Args:  cobra.NoArgs,
	RunE:  runChatSessions,
}

func init() {
	chatCmd.AddCommand(chatSessionsCmd)
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli:direct", "Session key for persisted history")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Model identifier (default from config)")
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "System prompt")
	chatCmd.Flags().BoolVar(&chatStream, "stream", true, "Stream the response")
	chatCmd.Flags().IntVar(&chatHistory, "history", 20, "Number of past messages sent with each request")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	model := modelOrDefault(chatModel, c.Config())
	sessions := c.Sessions()
	sess := sessions.GetOrCreate(chatSession)
	out := cmd.OutOrStdout()

	send := func(line string) error {
		sess.AddUser(line)
		req := schema.ChatCompletionRequest{
			ModelID:  model,
			Messages: chatMessages(sess),
			Stream:   chatStream,
		}
		reply, err := complete(ctx, c.Stack(), req, out)
		if err != nil {
			return err
		}
		sess.AddAssistant(reply.Content, reply.StopReason)
		if err := sessions.Save(sess); err != nil {
			slog.Warn("Failed to save session", "key", sess.Key, "error", err)
		}
		return nil
	}

	if chatMessage != "" {
		return send(chatMessage)
	}

	fmt.Fprintf(out, "%s Chatting with %s (type 'exit' or Ctrl+C to quit, '/clear' to reset)\n\n", logo, model)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case exitCommands[strings.ToLower(line)]:
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case line == "/clear":
			if err := sessions.Clear(sess.Key); err != nil {
				return err
			}
			sess = sessions.GetOrCreate(chatSession)
			fmt.Fprintln(out, "History cleared.")
			continue
		}
		if err := send(line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func chatMessages(sess *session.Session) []schema.Message {
	msgs := schema.NewMessages()
	if chatSystem != "" {
		msgs.AddSystem(chatSystem)
	}
	msgs.Append(sess.GetHistory(chatHistory))
	return msgs.Messages
}

// complete runs one chat completion. Streamed deltas are written to w as they
// arrive; a non-streamed answer is printed as a whole.
func complete(ctx context.Context, client *stackclient.Client, req schema.ChatCompletionRequest, w io.Writer) (schema.Message, error) {
	if !req.Stream {
		resp, err := client.ChatCompletion(ctx, req)
		if err != nil {
			return schema.Message{}, fmt.Errorf("chat completion: %w", err)
		}
		msg := resp.CompletionMessage
		msg.Content = llmutils.StripThink(msg.Content)
		cmdutils.PrintResponse(w, msg.Content)
		return msg, nil
	}

	var sb strings.Builder
	stopReason := ""
	fmt.Fprintf(w, "\n%s ", logo)
	err := client.ChatCompletionStream(ctx, req, func(chunk schema.ChatCompletionChunk) error {
		ev := chunk.Event
		if ev.StopReason != "" {
			stopReason = ev.StopReason
		}
		if ev.Delta != "" {
			sb.WriteString(ev.Delta)
			fmt.Fprint(w, ev.Delta)
		}
		return nil
	})
	fmt.Fprint(w, "\n\n")
	if err != nil {
		return schema.Message{}, fmt.Errorf("chat completion stream: %w", err)
	}
	return schema.NewCompletionMessage(llmutils.StripThink(sb.String()), stopReason, nil), nil
}

func runChatSessions(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	infos := c.Sessions().List()
	if len(infos) == 0 {
		fmt.Fprintf(out, "No sessions in %s\n", c.Sessions().Dir())
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(out, "%-30s %s\n", info.Key, info.UpdatedAt)
	}
	return nil
}
