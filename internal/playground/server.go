// Package playground serves a small HTTP API in front of a stack server so
// browser clients can list models, chat and run shields without talking to
// the stack directly.
package playground

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stackpilot/stackpilot/internal/schema"
)

const shutdownTimeout = 5 * time.Second

// Backend is the part of the stack client the playground proxies to.
type Backend interface {
	ListModels(ctx context.Context) ([]schema.Model, error)
	ListShields(ctx context.Context) ([]schema.Shield, error)
	ChatCompletion(ctx context.Context, req schema.ChatCompletionRequest) (schema.ChatCompletionResponse, error)
	ChatCompletionStream(ctx context.Context, req schema.ChatCompletionRequest, fn func(schema.ChatCompletionChunk) error) error
	RunShield(ctx context.Context, shieldID string, messages []schema.Message, params map[string]any) (schema.RunShieldResponse, error)
}

// Server routes playground requests to a Backend.
type Server struct {
	backend      Backend
	defaultModel string
}

// New returns a Server. defaultModel is used when a chat request names none.
func New(backend Backend, defaultModel string) *Server {
	return &Server{backend: backend, defaultModel: defaultModel}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(api chi.Router) {
		api.Get("/models", s.handleModels)
		api.Get("/shields", s.handleShields)
		api.Post("/chat", s.handleChat)
		api.Post("/safety", s.handleSafety)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Playground listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Playground shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
