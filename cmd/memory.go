package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/memory"
	"github.com/stackpilot/stackpilot/internal/shared/ansi"
	"github.com/stackpilot/stackpilot/internal/shared/llmutils"
	"github.com/stackpilot/stackpilot/internal/stackclient"
)

var (
	memoryEmbeddingModel string
	memoryMaxChunks      int
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Create, fill and query memory banks",
}

var memoryCreateCmd = &cobra.Command{
	Use:   "create <bank-id>",
	Short: "Register a vector memory bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryCreate,
}

var memoryInsertCmd = &cobra.Command{
	Use:   "insert <bank-id> <url-or-file>...",
	Short: "Insert URLs or local files into a memory bank",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMemoryInsert,
}

var memoryQueryCmd = &cobra.Command{
	Use:   "query <bank-id> <query>",
	Short: "Retrieve the chunks most relevant to a query",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMemoryQuery,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered memory banks",
	Args:  cobra.NoArgs,
	RunE:  runMemoryList,
}

func init() {
	memoryCreateCmd.Flags().StringVar(&memoryEmbeddingModel, "embedding-model", memory.DefaultEmbeddingModel, "Embedding model")
	memoryQueryCmd.Flags().IntVar(&memoryMaxChunks, "max-chunks", 5, "Maximum number of chunks returned")

	memoryCmd.AddCommand(memoryCreateCmd)
	memoryCmd.AddCommand(memoryInsertCmd)
	memoryCmd.AddCommand(memoryQueryCmd)
	memoryCmd.AddCommand(memoryListCmd)
}

func runMemoryCreate(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	bank := memory.NewVectorBank(args[0], memoryEmbeddingModel)
	if err := c.Stack().RegisterMemoryBank(ctx, bank); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Registered memory bank %s (%s)\n", bank.MemoryBankID, bank.Params.EmbeddingModel)
	return nil
}

func runMemoryInsert(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	docs, err := memory.LoadDocuments(ctx, args[1:])
	if err != nil {
		return err
	}
	if err := c.Stack().InsertDocuments(ctx, args[0], docs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Inserted %d documents into %s\n", len(docs), args[0])
	return nil
}

func runMemoryQuery(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	query := strings.Join(args[1:], " ")
	resp, err := c.Stack().QueryMemory(ctx, args[0], query, map[string]any{"max_chunks": memoryMaxChunks})
	if stackclient.IsNotFound(err) {
		return fmt.Errorf("memory bank %s not found; create it with 'stackpilot memory create %s'", args[0], args[0])
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(resp.Chunks) == 0 {
		fmt.Fprintln(out, "No matching chunks.")
		return nil
	}
	for i, chunk := range resp.Chunks {
		score := 0.0
		if i < len(resp.Scores) {
			score = resp.Scores[i]
		}
		fmt.Fprintln(out, ansi.Cyan(fmt.Sprintf("[%.3f] %s", score, chunk.DocumentID)))
		fmt.Fprintln(out, llmutils.Preview(chunk.Content, 500))
		fmt.Fprintln(out)
	}
	return nil
}

func runMemoryList(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	banks, err := c.Stack().ListMemoryBanks(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(banks) == 0 {
		fmt.Fprintln(out, "No memory banks registered.")
		return nil
	}
	for _, b := range banks {
		fmt.Fprintf(out, "%-30s %s\n", b.MemoryBankID, b.Params.EmbeddingModel)
	}
	return nil
}
