// Package server implements the lexvek HTTP API: read-only similarity and
// analogy queries over a trained model.
package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sanonone/lexvek/internal/server/ui"
	"github.com/sanonone/lexvek/pkg/core"
	"github.com/sanonone/lexvek/pkg/metrics"
)

// Server exposes a trained model over HTTP. The model is immutable, so
// every handler can read it without locking.
type Server struct {
	model      *core.Model
	httpServer *http.Server
	authToken  string
}

// NewServer wires the model to the HTTP mux.
//
// With a non-empty authToken every model route requires a matching bearer
// token; /healthz and /metrics stay open so probes and scrapers keep
// working.
func NewServer(model *core.Model, addr string, authToken string) *Server {
	s := &Server{
		model:     model,
		authToken: authToken,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux
	// Order matters! Recovery must be outer-most to catch everything.

	var handler http.Handler = mux

	// 1. Auth (Inner)
	handler = s.authMiddleware(handler)

	// 2. Logging (Middle) - Logs duration and status
	handler = s.LoggingMiddleware(handler)

	// 3. Recovery (Outer) - Catches panics
	handler = s.RecoveryMiddleware(handler)

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	rootMux.Handle("GET /ui/", http.StripPrefix("/ui/", ui.GetHandler()))
	rootMux.Handle("/", handler)

	metrics.VocabularyWords.Set(float64(model.Size()))

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: rootMux,
	}
	return s
}

// Handler returns the root handler, letting tests drive the server without
// binding a port.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until Shutdown is called.
func (s *Server) Run() error {
	slog.Info("HTTP server listening",
		"addr", s.httpServer.Addr,
		"words", s.model.Size(),
		"dimensions", s.model.Dim())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server, waiting briefly for in-flight requests.
func (s *Server) Shutdown() {
	slog.Info("starting graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

// authMiddleware rejects requests lacking the configured bearer token.
// An empty token disables authentication entirely.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeHTTPError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
