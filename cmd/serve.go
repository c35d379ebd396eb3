package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the playground HTTP API in front of the stack server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config server.host/port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	addr := serveAddr
	if addr == "" {
		addr = c.Config().ServerAddr()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Playground on http://%s (stack %s)\n", logo, addr, c.Stack().BaseURL())
	return c.Playground().ListenAndServe(ctx, addr)
}
