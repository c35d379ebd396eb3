package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
)

var safetyShield string

var safetyCmd = &cobra.Command{
	Use:   "safety [message...]",
	Short: "Run a shield over one or more user messages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSafety,
}

var safetyShieldsCmd = &cobra.Command{
	Use:   "shields",
	Short: "List shields registered on the stack server",
	Args:  cobra.NoArgs,
	RunE:  runSafetyShields,
}

func init() {
	safetyCmd.Flags().StringVar(&safetyShield, "shield", schema.ShieldLlamaGuard, "Shield identifier")
	safetyCmd.AddCommand(safetyShieldsCmd)
}

func runSafety(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	for _, text := range args {
		fmt.Fprintln(out, ansi.Bold("User> "+text))
		resp, err := c.Stack().RunShield(ctx, safetyShield, []schema.Message{schema.NewUserMessage(text)}, map[string]any{})
		if err != nil {
			return fmt.Errorf("run shield %s: %w", safetyShield, err)
		}
		if !resp.IsViolation() {
			fmt.Fprintln(out, ansi.Magenta("No Violation"))
			continue
		}
		v := resp.Violation
		fmt.Fprintln(out, ansi.Red(fmt.Sprintf("%s %s", v.ViolationLevel, v.UserMessage)))
	}
	return nil
}

func runSafetyShields(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	shields, err := c.Stack().ListShields(ctx)
	if err != nil {
		return fmt.Errorf("list shields: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(shields) == 0 {
		fmt.Fprintln(out, "No shields registered.")
		return nil
	}
	for _, s := range shields {
		fmt.Fprintf(out, "%-30s %s\n", s.Identifier, s.ProviderID)
	}
	return nil
}
