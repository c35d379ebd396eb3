package session

import (
	"sync"
	"time"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// Session holds one chat conversation's messages and metadata.
type Session struct {
	Key       string
	Messages  schema.Messages
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any

	mu sync.Mutex
}

func newSession(key string) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		Messages:  schema.NewMessages(),
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  map[string]any{},
	}
}

// AddUser appends a user message to the session.
func (s *Session) AddUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddUser(content)
	s.UpdatedAt = time.Now()
}

// AddAssistant appends a completion message to the session.
func (s *Session) AddAssistant(content, stopReason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddAssistant(content, stopReason, nil)
	s.UpdatedAt = time.Now()
}

// GetHistory returns the last maxMessages messages, or all of them when
// maxMessages <= 0.
func (s *Session) GetHistory(maxMessages int) schema.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Messages.Tail(maxMessages)
}

// Len returns the number of messages in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Messages.Len()
}

// Clear drops every message.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = schema.NewMessages()
	s.UpdatedAt = time.Now()
}
