package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/tools"
)

func TestNewWiresServices(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Stack.Endpoint = "http://stack.internal:5000"
	cfg.Agents.Defaults.Workspace = t.TempDir()

	c, err := New(&cfg)
	require.NoError(t, err)

	assert.Same(t, &cfg, c.Config())
	assert.Equal(t, "http://stack.internal:5000", c.Stack().BaseURL())
	assert.NotNil(t, c.GitHub())
	assert.NotNil(t, c.Agents())
	assert.NotNil(t, c.Playground())
	assert.DirExists(t, c.Sessions().Dir())

	assert.NotNil(t, c.Tools().GetTool(tools.ToolListFiles), "workspace tools are registered")
}

func TestResolveDefaultModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Model = ""
	assert.Equal(t, DefaultModel("Llama3.1-8B-Instruct"), resolveDefaultModel(&cfg))

	cfg.Agents.Defaults.Model = "Llama3.2-3B-Instruct"
	assert.Equal(t, DefaultModel("Llama3.2-3B-Instruct"), resolveDefaultModel(&cfg))
}
