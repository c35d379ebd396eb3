package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_NonExistent(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
}

func TestLoadFile_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"stack": map[string]any{"endpoint": "http://stack:5001"},
		"agents": map[string]any{
			"defaults": map[string]any{
				"model":    "Llama3.2-3B-Instruct",
				"maxIters": 8,
			},
		},
	})

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Stack.Endpoint != "http://stack:5001" {
		t.Errorf("expected endpoint from file, got %q", cfg.Stack.Endpoint)
	}
	if cfg.Agents.Defaults.Model != "Llama3.2-3B-Instruct" {
		t.Errorf("expected model %q, got %q", "Llama3.2-3B-Instruct", cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.MaxIters != 8 {
		t.Errorf("expected maxIters 8, got %d", cfg.Agents.Defaults.MaxIters)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
}

func TestLoad_AppliesEnv(t *testing.T) {
	t.Setenv(EnvGitHubKey, "gh-token")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.APIKey != "gh-token" {
		t.Errorf("expected GitHub key from env, got %q", cfg.GitHub.APIKey)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := DefaultConfig()
	original.Agents.Defaults.Model = "Llama3.1-70B-Instruct"
	original.Server.Port = 9000

	if err := Save(&original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Agents.Defaults.Model != original.Agents.Defaults.Model {
		t.Errorf("model mismatch: got %q, want %q", loaded.Agents.Defaults.Model, original.Agents.Defaults.Model)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("port mismatch: got %d, want 9000", loaded.Server.Port)
	}
}

func TestSave_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "config.json")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestLoadFile_PartialConfig_UsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"agents": map[string]any{
			"defaults": map[string]any{
				"model": "custom-model",
			},
		},
	})

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != "custom-model" {
		t.Errorf("expected model %q, got %q", "custom-model", cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.MaxIters != def.Agents.Defaults.MaxIters {
		t.Errorf("expected default maxIters %d, got %d", def.Agents.Defaults.MaxIters, cfg.Agents.Defaults.MaxIters)
	}
	if cfg.Tools.Fetch.MaxChars != def.Tools.Fetch.MaxChars {
		t.Errorf("expected default fetch maxChars %d, got %d", def.Tools.Fetch.MaxChars, cfg.Tools.Fetch.MaxChars)
	}
}
