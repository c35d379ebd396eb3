package playground

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/stackclient"
)

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []schema.Message `json:"messages"`
	Stream   bool             `json:"stream"`
}

type safetyRequest struct {
	ShieldID string `json:"shieldId"`
	Message  string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.backend.ListModels(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models)
}

func (s *Server) handleShields(w http.ResponseWriter, r *http.Request) {
	shields, err := s.backend.ListShields(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shields)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Messages) == 0 {
		respondError(w, http.StatusBadRequest, "messages is required")
		return
	}
	if payload.Model == "" {
		payload.Model = s.defaultModel
	}

	req := schema.ChatCompletionRequest{
		ModelID:  payload.Model,
		Messages: payload.Messages,
		Stream:   payload.Stream,
	}

	if !payload.Stream {
		resp, err := s.backend.ChatCompletion(r.Context(), req)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	setupSSEHeaders(w)

	err := s.backend.ChatCompletionStream(r.Context(), req, func(chunk schema.ChatCompletionChunk) error {
		return sendSSEChunk(w, flusher, chunk)
	})
	if err != nil {
		slog.Warn("Chat stream failed", "model", payload.Model, "error", err)
		_ = sendSSEEvent(w, flusher, "error", map[string]string{"error": err.Error()})
	}
	_ = sendSSEEvent(w, flusher, "done", map[string]string{})
}

func (s *Server) handleSafety(w http.ResponseWriter, r *http.Request) {
	var payload safetyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ShieldID == "" || payload.Message == "" {
		respondError(w, http.StatusBadRequest, "shieldId and message are required")
		return
	}

	msgs := []schema.Message{schema.NewUserMessage(payload.Message)}
	resp, err := s.backend.RunShield(r.Context(), payload.ShieldID, msgs, nil)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUpstreamError maps a stack error onto the playground response:
// remote 4xx statuses pass through, everything else is a bad gateway.
func respondUpstreamError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var apiErr *stackclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		status = apiErr.StatusCode
	}
	respondError(w, status, err.Error())
}
