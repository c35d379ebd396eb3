// Package session persists interactive chat history as JSONL files.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…","metadata":{…}}
//	Line 2+: one JSON message object per line
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// Info summarizes one stored session.
type Info struct {
	Key       string
	CreatedAt string
	UpdatedAt string
	Path      string
}

// Manager loads and persists sessions as JSONL files.
type Manager struct {
	sessionsDir string
	cache       sync.Map // key → *Session
}

// NewManager creates a Manager storing sessions in dir, creating it if
// necessary.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}

	return &Manager{sessionsDir: dir}, nil
}

// Dir returns the sessions directory.
func (m *Manager) Dir() string { return m.sessionsDir }

// GetOrCreate returns the cached session for key, loading from disk if needed,
// or creating an empty new one.
func (m *Manager) GetOrCreate(key string) *Session {
	if v, ok := m.cache.Load(key); ok {
		return v.(*Session)
	}

	s := m.load(key)
	if s == nil {
		s = newSession(key)
	}

	actual, _ := m.cache.LoadOrStore(key, s)

	return actual.(*Session)
}

// Save writes the session to disk and updates the cache.
func (m *Manager) Save(s *Session) error {
	path := m.sessionPath(s.Key)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	s.mu.Lock()
	msgs := s.Messages.Clone()
	meta := map[string]any{
		"_type":      "metadata",
		"key":        s.Key,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": s.UpdatedAt.UTC().Format(time.RFC3339),
		"metadata":   s.Metadata,
	}
	s.mu.Unlock()

	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	for _, msg := range msgs.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}

	m.cache.Store(s.Key, s)
	return nil
}

// Clear forgets the session and deletes its file. A missing file is not an
// error.
func (m *Manager) Clear(key string) error {
	m.cache.Delete(key)
	if err := os.Remove(m.sessionPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session %s: %w", key, err)
	}
	return nil
}

// List returns every stored session, newest first.
func (m *Manager) List() []Info {
	entries, _ := filepath.Glob(filepath.Join(m.sessionsDir, "*.jsonl"))
	var out []Info

	for _, path := range entries {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			var data map[string]any
			if json.Unmarshal(scanner.Bytes(), &data) == nil && data["_type"] == "metadata" {
				key, _ := data["key"].(string)
				if key == "" {
					key = strings.TrimSuffix(filepath.Base(path), ".jsonl")
				}
				created, _ := data["created_at"].(string)
				updated, _ := data["updated_at"].(string)
				out = append(out, Info{Key: key, CreatedAt: created, UpdatedAt: updated, Path: path})
			}
		}
		f.Close()
	}

	// RFC 3339 timestamps sort lexicographically.
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out
}

// sessionPath converts a session key to its JSONL file path.
func (m *Manager) sessionPath(key string) string {
	name := safeFilename(strings.ReplaceAll(key, ":", "_"))
	return filepath.Join(m.sessionsDir, name+".jsonl")
}

// safeFilename replaces filesystem-unsafe characters with underscores.
func safeFilename(name string) string {
	const unsafe = `<>:"/\|?*`
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(unsafe, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// load reads a session from disk. It returns nil when no file exists.
func (m *Manager) load(key string) *Session {
	f, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer f.Close()

	s := newSession(key)
	var createdAt, updatedAt time.Time

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20) // 1 MB per line
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var probe struct {
			Type      string         `json:"_type"`
			CreatedAt string         `json:"created_at"`
			UpdatedAt string         `json:"updated_at"`
			Metadata  map[string]any `json:"metadata"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			slog.Warn("Skipping malformed session line", "key", key, "err", err)
			continue
		}
		if probe.Type == "metadata" {
			if probe.Metadata != nil {
				s.Metadata = probe.Metadata
			}
			createdAt, _ = time.Parse(time.RFC3339, probe.CreatedAt)
			updatedAt, _ = time.Parse(time.RFC3339, probe.UpdatedAt)
			continue
		}

		var msg schema.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			slog.Warn("Skipping malformed session message", "key", key, "err", err)
			continue
		}
		s.Messages.Add(msg)
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("Error reading session file", "key", key, "err", err)
		return nil
	}
	if !createdAt.IsZero() {
		s.CreatedAt = createdAt
	}
	if !updatedAt.IsZero() {
		s.UpdatedAt = updatedAt
	}
	return s
}
