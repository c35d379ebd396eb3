package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the public GitHub REST API root.
const DefaultAPIBase = "https://api.github.com"

// ErrMissingToken is returned when no GitHub API key is configured.
var ErrMissingToken = errors.New("GITHUB_API_KEY is not set")

// IssueDetails is the part of an issue the coding agent reads.
type IssueDetails struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

// Client reads issues from the GitHub REST API.
type Client struct {
	token      string
	apiBase    string
	httpClient *http.Client
}

// NewClient returns a client authenticating with token. apiBase may be
// empty for DefaultAPIBase.
func NewClient(token, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		token:      token,
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchIssue returns the title and body of issue.
func (c *Client) FetchIssue(ctx context.Context, issue Issue) (IssueDetails, error) {
	if c.token == "" {
		return IssueDetails{}, ErrMissingToken
	}
	url := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.apiBase, issue.Owner, issue.Repo, issue.Number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return IssueDetails{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return IssueDetails{}, fmt.Errorf("fetch issue: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return IssueDetails{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body := strings.TrimSpace(string(raw))
		if len(body) > 300 {
			body = body[:300]
		}
		return IssueDetails{}, fmt.Errorf("fetch issue %s: HTTP %d: %s", issue, resp.StatusCode, body)
	}

	var details IssueDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return IssueDetails{}, fmt.Errorf("decode issue: %w", err)
	}
	return details, nil
}
