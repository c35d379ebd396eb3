package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models registered on the stack server",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	models, err := c.Stack().ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models registered.")
		return nil
	}
	for _, m := range models {
		fmt.Fprintf(out, "%-40s %s\n", m.Identifier, m.ProviderID)
	}
	return nil
}
