// Package http serves the animation viewer alongside the usual health,
// readiness, and metrics endpoints. The browser page polls /frame.svg so all
// playback state lives server-side in the player.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/render"
)

// FramePlayer is the animation surface the server exposes over HTTP.
type FramePlayer interface {
	Current() frames.Frame
	FrameCount() int
	State() frames.State
	Speed() float64
	SetSpeed(mult float64) error
	Pause()
	Resume()
	CheckReadiness(ctx context.Context) error
}

// Server exposes the animation viewer plus health, readiness, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	player     FramePlayer
	renderer   *render.Renderer
	summary    domain.Summary
	logger     *slog.Logger
}

// NewServer wires the viewer routes around a player and renderer.
func NewServer(addr string, player FramePlayer, renderer *render.Renderer, summary domain.Summary, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		player:   player,
		renderer: renderer,
		summary:  summary,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /frame.svg", s.handleFrame)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /speed", s.handleSpeed)
	mux.HandleFunc("POST /pause", s.handlePause)
	mux.HandleFunc("POST /resume", s.handleResume)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(viewerPage)) //nolint:errcheck // best-effort page write
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if err := s.player.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	frame := s.player.Current()
	svg := s.renderer.Render(frame)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Index", strconv.Itoa(frame.Index))
	w.WriteHeader(http.StatusOK)
	w.Write(svg) //nolint:errcheck // best-effort frame write
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":     s.summary,
		"frame_count": s.player.FrameCount(),
		"frame_index": s.player.Current().Index,
		"state":       s.player.State(),
		"speed":       s.player.Speed(),
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("multiplier")
	mult, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multiplier must be a number"})
		return
	}
	if err := s.player.SetSpeed(mult); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"speed": mult})
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.player.Pause()
	writeJSON(w, http.StatusOK, map[string]any{"state": s.player.State()})
}

func (s *Server) handleResume(w http.ResponseWriter, _ *http.Request) {
	s.player.Resume()
	writeJSON(w, http.StatusOK, map[string]any{"state": s.player.State()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.player.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
