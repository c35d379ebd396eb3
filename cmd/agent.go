package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/agent"
	"github.com/stackpilot/stackpilot/internal/dependency"
	"github.com/stackpilot/stackpilot/internal/eventlog"
	"github.com/stackpilot/stackpilot/internal/memory"
	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
	"github.com/stackpilot/stackpilot/internal/tools"
)

var (
	agentMessages           []string
	agentScript             string
	agentTools              []string
	agentAttachments        []string
	agentMemoryBank         string
	agentAttachmentBehavior string
	agentPromptFormat       string
	agentModel              string
	agentMaxIters           int
	agentBuiltinSearch      bool
	agentDisableSafety      bool
	agentStream             bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run a multi-turn agent with client-side custom tools",
	Example: `  stackpilot agent -m "What is the weather in Paris?" --tools web_search
  stackpilot agent --script turns.yaml --attachment-behavior rag`,
	RunE: runAgent,
}

var agentToolsJSON bool

var agentToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the custom tools an agent can be given",
	Args:  cobra.NoArgs,
	RunE:  runAgentTools,
}

func init() {
	agentToolsCmd.Flags().BoolVar(&agentToolsJSON, "json", false, "Print the function_call definitions as JSON")
	agentCmd.AddCommand(agentToolsCmd)

	f := agentCmd.Flags()
	f.StringArrayVarP(&agentMessages, "message", "m", nil, "User message; repeat for several turns")
	f.StringVar(&agentScript, "script", "", "YAML file listing turns and attachments")
	f.StringSliceVar(&agentTools, "tools", []string{string(tools.ToolWebSearch)}, "Custom tools offered to the agent")
	f.StringSliceVar(&agentAttachments, "attach", nil, "URL or file attached to the first turn")
	f.StringVar(&agentMemoryBank, "memory-bank", "", "Memory bank the memory tool queries")
	f.StringVar(&agentAttachmentBehavior, "attachment-behavior", "", "rag, code_interpreter or auto")
	f.StringVar(&agentPromptFormat, "prompt-format", "", "Tool prompt format: json, function_tag or python_list")
	f.StringVar(&agentModel, "model", "", "Model identifier (default from config)")
	f.IntVar(&agentMaxIters, "max-iters", 0, "Custom tool round trips per turn (default from config)")
	f.BoolVar(&agentBuiltinSearch, "builtin-search", false, "Add the server-side search, wolfram_alpha, photogen and code_interpreter tools")
	f.BoolVar(&agentDisableSafety, "disable-safety", false, "Run without input and output shields")
	f.BoolVar(&agentStream, "stream", true, "Render inference output as it streams")
}

func runAgent(cmd *cobra.Command, _ []string) error {
	inputs, err := agentInputs()
	if err != nil {
		return err
	}

	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	tls, err := c.Tools().Select(agentTools...)
	if err != nil {
		return err
	}
	tc, err := quickToolConfig(c, tls)
	if err != nil {
		return err
	}

	defaults := c.Config().Agents.Defaults
	agentCfg := agent.MakeAgentConfig(modelOrDefault(agentModel, c.Config()), agentDisableSafety || defaults.DisableSafety, tc)
	maxIters := agentMaxIters
	if maxIters == 0 {
		maxIters = defaults.MaxIters
	}

	exec, err := c.Agents().NewExecutor(ctx, agentCfg, tls, agent.WithMaxIters(maxIters))
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}
	slog.Info("Agent ready", "agent", exec.AgentID(), "tools", tls.Names(), "max_iters", exec.MaxIters())

	logger := eventlog.New(eventlog.WithStream(agentStream))
	return agent.ExecuteTurns(ctx, exec, inputs, logger, cmd.OutOrStdout())
}

func agentInputs() ([]agent.TurnInput, error) {
	var inputs []agent.TurnInput
	switch {
	case agentScript != "" && len(agentMessages) > 0:
		return nil, errors.New("use either --script or --message, not both")
	case agentScript != "":
		loaded, err := agent.LoadScript(agentScript)
		if err != nil {
			return nil, err
		}
		inputs = loaded
	case len(agentMessages) > 0:
		for _, m := range agentMessages {
			inputs = append(inputs, agent.TurnInput{Message: m})
		}
	default:
		return nil, errors.New("nothing to do: pass --message or --script")
	}

	for _, src := range agentAttachments {
		att, err := memory.AttachmentFromSource(src, "")
		if err != nil {
			return nil, err
		}
		inputs[0].Attachments = append(inputs[0].Attachments, att)
	}
	return inputs, nil
}

func quickToolConfig(c *dependency.Container, tls *tools.ToolList) (agent.QuickToolConfig, error) {
	defaults := c.Config().Agents.Defaults

	behavior, err := agent.ParseAttachmentBehavior(firstNonEmpty(agentAttachmentBehavior, defaults.AttachmentBehavior))
	if err != nil {
		return agent.QuickToolConfig{}, err
	}
	promptFormat, err := agent.ParsePromptFormat(firstNonEmpty(agentPromptFormat, defaults.PromptFormat))
	if err != nil {
		return agent.QuickToolConfig{}, err
	}

	var builtins []schema.ToolDefinition
	if agentBuiltinSearch {
		builtins, err = agent.DefaultBuiltins(apiKeys(c.Config()))
		if err != nil {
			return agent.QuickToolConfig{}, err
		}
	}

	return agent.QuickToolConfig{
		CustomTools:        tls.Tools(),
		PromptFormat:       promptFormat,
		AttachmentBehavior: behavior,
		BuiltinTools:       builtins,
		MemoryBankID:       agentMemoryBank,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runAgentTools(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	all := c.Tools().AllTools()
	out := cmd.OutOrStdout()
	if agentToolsJSON {
		return printJSON(out, all.Definitions())
	}
	for _, t := range all.Tools() {
		fmt.Fprintln(out, ansi.Bold(t.Name()))
		fmt.Fprintf(out, "  %s\n  %s\n\n", tools.InstructionString(t), tools.ParametersForSystemPrompt(t))
	}
	return nil
}
