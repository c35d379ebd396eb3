package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/config/provider"
	"github.com/stackpilot/stackpilot/internal/stackclient"
)

const statusPingTimeout = 3 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stackpilot status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Fprintf(out, "%s stackpilot Status\n\n", logo)
	fmt.Fprintf(out, "Config:    %s %s\n", cfgPath, mark(fileExists(cfgPath)))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "  (could not load config: %v)\n", err)
		return nil
	}

	ws := cfg.WorkspacePath()
	fmt.Fprintf(out, "Workspace: %s %s\n", ws, mark(fileExists(ws)))
	fmt.Fprintf(out, "Model:     %s\n", cfg.Agents.Defaults.Model)

	client := stackclient.New(cfg.Stack.Endpoint)
	ctx, cancel := context.WithTimeout(context.Background(), statusPingTimeout)
	defer cancel()
	models, pingErr := client.ListModels(ctx)
	if pingErr != nil {
		fmt.Fprintf(out, "Stack:     %s ✗ (%v)\n\n", cfg.Stack.Endpoint, pingErr)
	} else {
		fmt.Fprintf(out, "Stack:     %s ✓ (%d models)\n\n", cfg.Stack.Endpoint, len(models))
	}

	fmt.Fprintln(out, "Keys:")
	keys := []struct {
		label string
		value string
	}{
		{"GitHub", cfg.GitHub.APIKey},
		{"Brave Search", cfg.Tools.Brave.APIKey},
		{"Bing Search", cfg.Tools.Bing.APIKey},
		{"Wolfram Alpha", cfg.Tools.WolframAlpha.APIKey},
	}
	for _, name := range provider.Names {
		keys = append(keys, struct {
			label string
			value string
		}{name, cfg.Providers.ByName(name).APIKey})
	}
	for _, k := range keys {
		if k.value != "" {
			fmt.Fprintf(out, "  %-20s ✓\n", k.label)
		} else {
			fmt.Fprintf(out, "  %-20s (not set)\n", k.label)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
