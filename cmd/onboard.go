package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and workspace",
	RunE:  runOnboard,
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	cfg := config.DefaultConfig()
	if fileExists(cfgPath) {
		fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
		fmt.Fprintf(out, "Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		// Env overrides are not applied here so secrets stay out of the file.
		existing, err := config.LoadFile(cfgPath)
		if err != nil {
			return err
		}
		cfg = *existing
	}
	if err := config.Save(&cfg, cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Config written to %s\n", cfgPath)

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	fmt.Fprintf(out, "✓ Workspace at %s\n", workspace)
	if err := os.MkdirAll(config.SessionsDir(), 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	fmt.Fprintf(out, "\n%s stackpilot is ready!\n\n", logo)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Point stack.endpoint in %s at your server (or set %s)\n", cfgPath, config.EnvEndpoint)
	fmt.Fprintf(out, "  2. Put API keys in a .env file or the config (%s, %s, ...)\n", config.EnvBraveKey, config.EnvGitHubKey)
	fmt.Fprintln(out, "  3. Chat: stackpilot chat -m \"Hello!\"")
	return nil
}
