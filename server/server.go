// Package server exposes the message renderers over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/miosa/osa-chatview/config"
	"github.com/miosa/osa-chatview/highlight"
	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/render"
	"github.com/miosa/osa-chatview/style"
)

const maxBodyBytes = 1 << 20

// Server renders messages on request. It keeps no per-request state.
type Server struct {
	fragments   *render.Renderer
	terminal    *render.Terminal
	highlighter *highlight.HTML
	logger      *slog.Logger
}

// New wires the renderers described by cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h := highlight.NewHTML(cfg.ChromaStyle())

	var opts []render.Option
	if cfg.Sanitize {
		opts = append(opts, render.WithBodyFilter(newSanitizer()))
	}

	theme := style.Themes[cfg.Theme]
	return &Server{
		fragments:   render.New(markdown.New(h), opts...),
		terminal:    render.NewTerminal(markdown.NewTerminal(theme.GlamourStyle, cfg.WordWrap), true),
		highlighter: h,
		logger:      logger,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Get("/styles/chroma.css", s.handleCSS)
	r.Post("/render", s.handleFragment)
	r.Post("/render/terminal", s.handleTerminal)
	r.Post("/render/page", s.handlePage)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeMessage(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.fragments.Render(&buf, m); err != nil {
		s.renderFailed(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	m, ok := s.decodeMessage(w, r)
	if !ok {
		return
	}
	width := 0
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "width must be a positive integer")
			return
		}
		width = n
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.terminal.Render(m, width) + "\n"))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	conv, err := message.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := s.WritePage(&buf, conv); err != nil {
		s.renderFailed(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.highlighter.WriteCSS(&buf); err != nil {
		s.renderFailed(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) decodeMessage(w http.ResponseWriter, r *http.Request) (message.Message, bool) {
	var m message.Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&m); err != nil {
		Error(w, http.StatusBadRequest, "invalid message: "+err.Error())
		return m, false
	}
	if err := m.Validate(); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return m, false
	}
	return m, true
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Render failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", chiMiddleware.GetReqID(r.Context()),
	)
	Error(w, http.StatusInternalServerError, "render failed")
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}
