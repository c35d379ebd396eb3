package stackclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// RegisterMemoryBank creates a memory bank on the server.
func (c *Client) RegisterMemoryBank(ctx context.Context, bank schema.MemoryBank) error {
	if err := c.do(ctx, http.MethodPost, "/memory-banks", nil, bank, nil); err != nil {
		return fmt.Errorf("register memory bank %s: %w", bank.MemoryBankID, err)
	}
	return nil
}

// ListMemoryBanks returns every registered memory bank.
func (c *Client) ListMemoryBanks(ctx context.Context) ([]schema.MemoryBank, error) {
	var out []schema.MemoryBank
	if err := c.do(ctx, http.MethodGet, "/memory-banks", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list memory banks: %w", err)
	}
	return out, nil
}

// InsertDocuments adds documents to a bank. The server chunks and embeds them.
func (c *Client) InsertDocuments(ctx context.Context, bankID string, docs []schema.Document) error {
	req := schema.InsertDocumentsRequest{BankID: bankID, Documents: docs}
	if err := c.do(ctx, http.MethodPost, "/memory/insert", nil, req, nil); err != nil {
		return fmt.Errorf("insert documents into %s: %w", bankID, err)
	}
	return nil
}

// QueryMemory retrieves the chunks most relevant to query.
func (c *Client) QueryMemory(ctx context.Context, bankID, query string, params map[string]any) (schema.QueryDocumentsResponse, error) {
	req := schema.QueryDocumentsRequest{BankID: bankID, Query: query, Params: params}
	var out schema.QueryDocumentsResponse
	if err := c.do(ctx, http.MethodPost, "/memory/query", nil, req, &out); err != nil {
		return schema.QueryDocumentsResponse{}, fmt.Errorf("query memory %s: %w", bankID, err)
	}
	return out, nil
}
