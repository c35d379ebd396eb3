package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/memory"
	"github.com/stackpilot/stackpilot/internal/schema"
)

var (
	scoreDatasetID string
	scoreFunctions []string
	scoreRows      int
	scoreProvider  string
	scoreSave      bool
)

var scoreCmd = &cobra.Command{
	Use:   "score <file.csv>",
	Short: "Register a CSV dataset, then score a page of rows and the whole batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var scoreFunctionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List scoring functions registered on the stack server",
	Args:  cobra.NoArgs,
	RunE:  runScoreFunctions,
}

var scoreDatasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List registered datasets",
	Args:  cobra.NoArgs,
	RunE:  runScoreDatasets,
}

func init() {
	scoreCmd.AddCommand(scoreFunctionsCmd)
	scoreCmd.AddCommand(scoreDatasetsCmd)

	f := scoreCmd.Flags()
	f.StringVar(&scoreDatasetID, "dataset-id", "", "Dataset identifier (default: file name)")
	f.StringSliceVar(&scoreFunctions, "functions", []string{"meta-reference::equality"}, "Scoring functions")
	f.IntVar(&scoreRows, "rows", 5, "Rows scored inline from the first page")
	f.StringVar(&scoreProvider, "provider", "huggingface", "Dataset provider")
	f.BoolVar(&scoreSave, "save-results", false, "Ask the server to store batch results as a dataset")
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]
	columns, err := csvColumns(path)
	if err != nil {
		return err
	}
	uri, err := memory.DataURLFromFile(path)
	if err != nil {
		return err
	}

	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	stack := c.Stack()
	out := cmd.OutOrStdout()

	datasetID := scoreDatasetID
	if datasetID == "" {
		datasetID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	def := schema.DatasetDef{
		Identifier:    datasetID,
		ProviderID:    scoreProvider,
		URL:           schema.URL{URI: uri},
		DatasetSchema: columns,
	}
	if err := stack.RegisterDataset(ctx, def); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Registered dataset %s (%d columns)\n", datasetID, len(columns))

	functions := make(map[string]any, len(scoreFunctions))
	for _, fn := range scoreFunctions {
		functions[fn] = nil
	}

	page, err := stack.GetRowsPaginated(ctx, datasetID, scoreRows, "")
	if err != nil {
		return err
	}
	scored, err := stack.Score(ctx, page.Rows, functions)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nScored %d of %d rows:\n", len(page.Rows), page.TotalCount)
	if err := printJSON(out, scored.Results); err != nil {
		return err
	}

	batch, err := stack.ScoreBatch(ctx, schema.ScoreBatchRequest{
		DatasetID:          datasetID,
		ScoringFunctions:   functions,
		SaveResultsDataset: scoreSave,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nBatch results:")
	return printJSON(out, batch.Results)
}

// csvColumns declares every header column of the file as a string column.
func csvColumns(path string) (map[string]schema.ColumnType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset %s is empty", path)
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	columns := make(map[string]schema.ColumnType, len(header))
	for _, name := range header {
		columns[strings.TrimSpace(name)] = schema.ColumnType{Type: "string"}
	}
	return columns, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runScoreFunctions(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fns, err := c.Stack().ListScoringFunctions(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, fn := range fns {
		fmt.Fprintf(out, "%-40s %s\n", fn.Identifier, fn.Description)
	}
	return nil
}

func runScoreDatasets(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	datasets, err := c.Stack().ListDatasets(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range datasets {
		fmt.Fprintf(out, "%-30s %-15s %d columns\n", d.Identifier, d.ProviderID, len(d.DatasetSchema))
	}
	return nil
}
