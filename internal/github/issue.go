// Package github parses GitHub issue URLs and fetches issues over the REST API.
package github

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIssueURL matches every issue URL parse failure.
var ErrInvalidIssueURL = errors.New("invalid GitHub issue URL format")

// Parse failure categories. Each one also matches ErrInvalidIssueURL.
var (
	ErrWrongDomain        = fmt.Errorf("%w: expected github.com as the domain", ErrInvalidIssueURL)
	ErrInvalidFormat      = fmt.Errorf("%w: expected github.com/<owner>/<repo>/issues/<number>", ErrInvalidIssueURL)
	ErrNotIssueURL        = fmt.Errorf("%w: expected /issues/ in the URL", ErrInvalidIssueURL)
	ErrMissingIssueNumber = fmt.Errorf("%w: expected an issue number in the URL", ErrInvalidIssueURL)
	ErrNonNumericIssue    = fmt.Errorf("%w: expected an integer issue number", ErrInvalidIssueURL)
)

// Issue identifies one GitHub issue.
type Issue struct {
	Owner  string
	Repo   string
	Number int
}

// String renders the canonical issue URL.
func (i Issue) String() string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", i.Owner, i.Repo, i.Number)
}

// Slug is "<owner>/<repo>".
func (i Issue) Slug() string { return i.Owner + "/" + i.Repo }

// ParseIssue parses [https://]github.com/<owner>/<repo>/issues/<number>.
// Trailing segments after the number are ignored.
func ParseIssue(rawURL string) (Issue, error) {
	u := strings.TrimPrefix(rawURL, "https://")

	parts := strings.Split(u, "/")
	if parts[0] != "github.com" {
		return Issue{}, fmt.Errorf("%w: %s", ErrWrongDomain, rawURL)
	}
	if len(parts) < 5 {
		return Issue{}, fmt.Errorf("%w: %s", ErrInvalidFormat, rawURL)
	}

	owner, repo := parts[1], parts[2]
	if owner == "" || repo == "" {
		return Issue{}, fmt.Errorf("%w: %s", ErrInvalidFormat, rawURL)
	}
	if parts[3] != "issues" {
		return Issue{}, fmt.Errorf("%w: %s", ErrNotIssueURL, rawURL)
	}
	if parts[4] == "" {
		return Issue{}, fmt.Errorf("%w: %s", ErrMissingIssueNumber, rawURL)
	}
	n, err := strconv.Atoi(parts[4])
	if err != nil || n <= 0 {
		return Issue{}, fmt.Errorf("%w: %s", ErrNonNumericIssue, parts[4])
	}
	return Issue{Owner: owner, Repo: repo, Number: n}, nil
}
