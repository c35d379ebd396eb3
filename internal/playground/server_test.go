package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/schema"
	"github.com/stackpilot/stackpilot/internal/stackclient"
)

type fakeBackend struct {
	models    []schema.Model
	shields   []schema.Shield
	chunks    []string
	streamErr error
	lastReq   schema.ChatCompletionRequest
	shieldErr error
	violation *schema.SafetyViolation
	lastMsgs  []schema.Message
}

func (f *fakeBackend) ListModels(context.Context) ([]schema.Model, error) {
	return f.models, nil
}

func (f *fakeBackend) ListShields(context.Context) ([]schema.Shield, error) {
	return f.shields, nil
}

func (f *fakeBackend) ChatCompletion(_ context.Context, req schema.ChatCompletionRequest) (schema.ChatCompletionResponse, error) {
	f.lastReq = req
	return schema.ChatCompletionResponse{
		CompletionMessage: schema.NewCompletionMessage(strings.Join(f.chunks, ""), "end_of_turn", nil),
	}, nil
}

func (f *fakeBackend) ChatCompletionStream(_ context.Context, req schema.ChatCompletionRequest, fn func(schema.ChatCompletionChunk) error) error {
	f.lastReq = req
	for _, c := range f.chunks {
		chunk := schema.ChatCompletionChunk{Event: schema.ChatCompletionEvent{EventType: schema.ChatEventProgress, Delta: c}}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return f.streamErr
}

func (f *fakeBackend) RunShield(_ context.Context, _ string, msgs []schema.Message, _ map[string]any) (schema.RunShieldResponse, error) {
	f.lastMsgs = msgs
	if f.shieldErr != nil {
		return schema.RunShieldResponse{}, f.shieldErr
	}
	return schema.RunShieldResponse{Violation: f.violation}, nil
}

func serve(t *testing.T, b Backend, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	New(b, "Llama3.1-8B-Instruct").Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, &fakeBackend{}, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListModels(t *testing.T) {
	b := &fakeBackend{models: []schema.Model{{Identifier: "m1", ProviderID: "p"}}}
	rec := serve(t, b, http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []schema.Model
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, b.models, got)
}

func TestListShields(t *testing.T) {
	b := &fakeBackend{shields: []schema.Shield{{Identifier: "llama_guard"}}}
	rec := serve(t, b, http.MethodGet, "/api/shields", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "llama_guard")
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	rec := serve(t, &fakeBackend{}, http.MethodPost, "/api/chat", `{"messages":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, &fakeBackend{}, http.MethodPost, "/api/chat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatNonStreaming(t *testing.T) {
	b := &fakeBackend{chunks: []string{"Hello", " there"}}
	rec := serve(t, b, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schema.ChatCompletionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello there", resp.CompletionMessage.Content)
	assert.Equal(t, "Llama3.1-8B-Instruct", b.lastReq.ModelID, "default model is filled in")
}

func TestChatStreaming(t *testing.T) {
	b := &fakeBackend{chunks: []string{"a", "b"}}
	rec := serve(t, b, http.MethodPost, "/api/chat", `{"model":"m","stream":true,"messages":[{"role":"user","content":"hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, `"event_type":"progress"`))
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: {}\n\n"))
	assert.NotContains(t, body, "event: error")
	assert.Equal(t, "m", b.lastReq.ModelID)
	assert.True(t, b.lastReq.Stream)
}

func TestChatStreamingError(t *testing.T) {
	b := &fakeBackend{chunks: []string{"a"}, streamErr: errors.New("boom")}
	rec := serve(t, b, http.MethodPost, "/api/chat", `{"stream":true,"messages":[{"role":"user","content":"hi"}]}`)

	body := rec.Body.String()
	assert.Contains(t, body, "event: error\ndata: {\"error\":\"boom\"}")
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: {}\n\n"))
}

func TestSafety(t *testing.T) {
	b := &fakeBackend{violation: &schema.SafetyViolation{ViolationLevel: schema.ViolationError, UserMessage: "nope"}}
	rec := serve(t, b, http.MethodPost, "/api/safety", `{"shieldId":"llama_guard","message":"bad"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schema.RunShieldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.IsViolation())
	assert.Equal(t, "nope", resp.Violation.UserMessage)
	require.Len(t, b.lastMsgs, 1)
	assert.Equal(t, schema.RoleUser, b.lastMsgs[0].Role)
}

func TestSafetyValidation(t *testing.T) {
	rec := serve(t, &fakeBackend{}, http.MethodPost, "/api/safety", `{"shieldId":"llama_guard"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpstreamErrorStatus(t *testing.T) {
	b := &fakeBackend{shieldErr: &stackclient.APIError{StatusCode: http.StatusNotFound, Body: "unknown shield"}}
	rec := serve(t, b, http.MethodPost, "/api/safety", `{"shieldId":"x","message":"m"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	b.shieldErr = errors.New("connection refused")
	rec = serve(t, b, http.MethodPost, "/api/safety", `{"shieldId":"x","message":"m"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(&fakeBackend{}, "m").ListenAndServe(ctx, "127.0.0.1:0")
	assert.NoError(t, err)
}
