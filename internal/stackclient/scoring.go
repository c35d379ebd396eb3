package stackclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// ListScoringFunctions returns every registered scoring function.
func (c *Client) ListScoringFunctions(ctx context.Context) ([]schema.ScoringFunction, error) {
	var out []schema.ScoringFunction
	if err := c.do(ctx, http.MethodGet, "/scoring-functions", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list scoring functions: %w", err)
	}
	return out, nil
}

// Score applies scoring functions to rows supplied inline.
func (c *Client) Score(ctx context.Context, rows []schema.Row, functions map[string]any) (schema.ScoreResponse, error) {
	req := schema.ScoreRequest{InputRows: rows, ScoringFunctions: functions}
	var out schema.ScoreResponse
	if err := c.do(ctx, http.MethodPost, "/scoring/score", nil, req, &out); err != nil {
		return schema.ScoreResponse{}, fmt.Errorf("score rows: %w", err)
	}
	return out, nil
}

// ScoreBatch applies scoring functions to a whole registered dataset.
func (c *Client) ScoreBatch(ctx context.Context, req schema.ScoreBatchRequest) (schema.ScoreBatchResponse, error) {
	var out schema.ScoreBatchResponse
	if err := c.do(ctx, http.MethodPost, "/scoring/score-batch", nil, req, &out); err != nil {
		return schema.ScoreBatchResponse{}, fmt.Errorf("score dataset %s: %w", req.DatasetID, err)
	}
	return out, nil
}

// RegisterDataset registers a dataset definition.
func (c *Client) RegisterDataset(ctx context.Context, def schema.DatasetDef) error {
	if err := c.do(ctx, http.MethodPost, "/datasets", nil, map[string]any{"dataset_def": def}, nil); err != nil {
		return fmt.Errorf("register dataset %s: %w", def.Identifier, err)
	}
	return nil
}

// ListDatasets returns every registered dataset.
func (c *Client) ListDatasets(ctx context.Context) ([]schema.DatasetDef, error) {
	var out []schema.DatasetDef
	if err := c.do(ctx, http.MethodGet, "/datasets", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return out, nil
}

// GetRowsPaginated fetches one page of dataset rows. A rowsInPage <= 0
// lets the server pick; pageToken is empty for the first page.
func (c *Client) GetRowsPaginated(ctx context.Context, datasetID string, rowsInPage int, pageToken string) (schema.PaginatedRows, error) {
	q := url.Values{"dataset_id": {datasetID}}
	if rowsInPage > 0 {
		q.Set("rows_in_page", strconv.Itoa(rowsInPage))
	}
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}
	var out schema.PaginatedRows
	if err := c.do(ctx, http.MethodGet, "/datasetio/rows", q, nil, &out); err != nil {
		return schema.PaginatedRows{}, fmt.Errorf("get rows of %s: %w", datasetID, err)
	}
	return out, nil
}
