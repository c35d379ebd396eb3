package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSearchTopK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "llama", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"web":{"results":[
			{"title":"a","url":"https://a","description":"A","extra":1},
			{"title":"b","url":"https://b","description":"B"},
			{"title":"c","url":"https://c","description":"C"}]}}`)
	}))
	defer srv.Close()
	old := BraveSearchURL
	BraveSearchURL = srv.URL
	defer func() { BraveSearchURL = old }()

	out, err := NewWebSearch("key", 2).RunImpl(context.Background(), map[string]any{"query": "llama"})
	require.NoError(t, err)
	res := out.(SearchResults)
	assert.Equal(t, "llama", res.Query)
	assert.Equal(t, []SearchResult{
		{Title: "a", URL: "https://a", Description: "A"},
		{Title: "b", URL: "https://b", Description: "B"},
	}, res.TopKResults)
}

func TestWebSearchMissingKey(t *testing.T) {
	_, err := NewWebSearch("", 0).RunImpl(context.Background(), map[string]any{"query": "x"})
	assert.Error(t, err)
}

func TestWebFetchReadability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<!doctype html><html><head><title>Llamas</title></head><body>
			<article><h1>Llamas</h1><p>Llamas are domesticated South American camelids used as pack animals
			by Andean cultures since the pre-Columbian era. They are social animals and live with others as a herd.</p>
			<p>Their wool is soft and contains only a small amount of lanolin.</p></article></body></html>`)
	}))
	defer srv.Close()

	out, err := NewWebFetch(0).RunImpl(context.Background(), map[string]any{"url": srv.URL})
	require.NoError(t, err)
	res := out.(FetchResult)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "readability", res.Extractor)
	assert.Contains(t, res.Text, "domesticated South American camelids")
}

func TestWebFetchTruncatesOnRuneBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "aé"+strings.Repeat("b", 10))
	}))
	defer srv.Close()

	out, err := NewWebFetch(2).RunImpl(context.Background(), map[string]any{"url": srv.URL})
	require.NoError(t, err)
	res := out.(FetchResult)
	assert.True(t, res.Truncated)
	assert.Equal(t, "a", res.Text)
	assert.True(t, utf8.ValidString(res.Text))
}

func TestWebFetchRejectsScheme(t *testing.T) {
	_, err := NewWebFetch(0).RunImpl(context.Background(), map[string]any{"url": "file:///etc/passwd"})
	assert.Error(t, err)
}

func TestHTMLToMarkdown(t *testing.T) {
	got := htmlToMarkdown(`<h2>Title</h2><p>See <a href="https://x">x</a></p><ul><li>one</li></ul>`)
	assert.Contains(t, got, "## Title")
	assert.Contains(t, got, "[x](https://x)")
	assert.Contains(t, got, "- one")
}
