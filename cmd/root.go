// Package cmd implements the stackpilot CLI using cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/agent"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/dependency"
)

const version = "0.1.0"
const logo = "🦙"

var (
	configPath   string
	endpointFlag string
	hostFlag     string
	portFlag     int
	logLevel     string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "stackpilot",
	Short: logo + " stackpilot: client apps for a Llama Stack server",
	Long: logo + " stackpilot drives a remote Llama Stack server: chat, agents with " +
		"client-side tools, safety shields, memory banks, scoring and a small playground API.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging(logLevel)
	},
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.stackpilot/config.json)")
	pf.StringVar(&endpointFlag, "endpoint", "", "Stack server base URL")
	pf.StringVar(&hostFlag, "host", "", "Stack server host (used when --endpoint is empty)")
	pf.IntVar(&portFlag, "port", 0, "Stack server port (used when --endpoint is empty)")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(safetyCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(serveCmd)
}

func parseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

func setupLogging(level string) error {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig reads the config and resolves the stack endpoint from the
// global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Stack.Endpoint = cfg.ResolveEndpoint(endpointFlag, hostFlag, portFlag)
	return cfg, nil
}

func newContainer() (*dependency.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return dependency.New(cfg)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func apiKeys(cfg *config.Config) agent.APIKeys {
	return agent.APIKeys{
		WolframAlpha: cfg.Tools.WolframAlpha.APIKey,
		Brave:        cfg.Tools.Brave.APIKey,
		Bing:         cfg.Tools.Bing.APIKey,
	}
}

func modelOrDefault(flagModel string, cfg *config.Config) string {
	if flagModel != "" {
		return flagModel
	}
	return firstNonEmpty(cfg.Agents.Defaults.Model, agent.DefaultModel)
}
