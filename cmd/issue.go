package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/agent"
	"github.com/stackpilot/stackpilot/internal/dependency"
	"github.com/stackpilot/stackpilot/internal/eventlog"
	"github.com/stackpilot/stackpilot/internal/github"
	"github.com/stackpilot/stackpilot/internal/tools"
)

var (
	issueWorkdir       string
	issueRun           bool
	issueModel         string
	issueMaxIters      int
	issueDisableSafety bool
)

var issueCmd = &cobra.Command{
	Use:   "issue <github-issue-url>",
	Short: "Fetch a GitHub issue and optionally let an agent work on it",
	Example: `  stackpilot issue https://github.com/owner/repo/issues/42
  stackpilot issue https://github.com/owner/repo/issues/42 --run --workdir ./repo`,
	Args: cobra.ExactArgs(1),
	RunE: runIssue,
}

func init() {
	f := issueCmd.Flags()
	f.StringVar(&issueWorkdir, "workdir", "", "Checkout the agent may read and edit (default: configured workspace)")
	f.BoolVar(&issueRun, "run", false, "Run the agent with file tools over --workdir")
	f.StringVar(&issueModel, "model", "", "Model identifier (default from config)")
	f.IntVar(&issueMaxIters, "max-iters", 20, "Custom tool round trips")
	f.BoolVar(&issueDisableSafety, "disable-safety", false, "Run without input and output shields")
}

func runIssue(cmd *cobra.Command, args []string) error {
	issue, err := github.ParseIssue(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if issueWorkdir != "" {
		abs, err := filepath.Abs(issueWorkdir)
		if err != nil {
			return fmt.Errorf("resolve workdir: %w", err)
		}
		cfg.Agents.Defaults.Workspace = abs
	}
	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	details, err := c.GitHub().FetchIssue(ctx, issue)
	if err != nil {
		return err
	}
	slog.Info("Fetched issue", "repo", issue.Slug(), "number", issue.Number, "state", details.State)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s [%s]\n%s\n\n", logo, issue, details.State, details.Title)
	if !issueRun {
		fmt.Fprintln(out, details.Body)
		return nil
	}

	message, err := agent.NewContextBuilder(cfg.WorkspacePath()).BuildIssueMessage(issue, details)
	if err != nil {
		return err
	}
	tls, err := c.Tools().Select(string(tools.ToolListFiles), string(tools.ToolViewFile), string(tools.ToolEditFile))
	if err != nil {
		return err
	}
	agentCfg := agent.MakeAgentConfig(modelOrDefault(issueModel, cfg), issueDisableSafety, agent.QuickToolConfig{
		CustomTools: tls.Tools(),
	})
	exec, err := c.Agents().NewExecutor(ctx, agentCfg, tls, agent.WithMaxIters(issueMaxIters))
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}

	inputs := []agent.TurnInput{{Message: message}}
	return agent.ExecuteTurns(ctx, exec, inputs, eventlog.New(), out)
}
