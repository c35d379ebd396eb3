package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/schema"
)

func TestParseLogLevel(t *testing.T) {
	lvl, err := parseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = parseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = parseLogLevel("loud")
	assert.Error(t, err)
}

func TestCSVColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.csv")
	require.NoError(t, os.WriteFile(path, []byte("input_query, expected_answer,generated_answer\nq,a,a\n"), 0o600))

	cols, err := csvColumns(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]schema.ColumnType{
		"input_query":      {Type: "string"},
		"expected_answer":  {Type: "string"},
		"generated_answer": {Type: "string"},
	}, cols)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = csvColumns(empty)
	assert.ErrorContains(t, err, "is empty")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestAgentInputs(t *testing.T) {
	t.Cleanup(func() {
		agentMessages, agentScript, agentAttachments = nil, "", nil
	})

	agentMessages = nil
	agentScript = ""
	_, err := agentInputs()
	assert.Error(t, err)

	agentMessages = []string{"one", "two"}
	agentAttachments = []string{"https://example.com/doc.txt"}
	inputs, err := agentInputs()
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "one", inputs[0].Message)
	require.Len(t, inputs[0].Attachments, 1)
	assert.Equal(t, "text/plain", inputs[0].Attachments[0].MimeType)
	assert.Empty(t, inputs[1].Attachments)

	agentScript = "turns.yaml"
	_, err = agentInputs()
	assert.Error(t, err, "script and messages are exclusive")
}
