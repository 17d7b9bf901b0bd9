// Package server exposes the capture surface over localhost HTTP: the task
// form, the start/stop toggle, and the status line.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
	"github.com/HarwaniDev/activity-tracker/internal/session"
)

//go:embed static/index.html
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server wires the session controller to HTTP routes.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	controller *session.Controller
}

type startRequest struct {
	TaskName string `json:"task_name"`
}

type stopResponse struct {
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// New creates a server bound to addr with all routes wired.
func New(addr string, controller *session.Controller) *Server {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)

	s := &Server{
		router:     router,
		controller: controller,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}

	router.Get("/", s.handleIndex)
	router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/session/start", s.handleStart)
		r.Post("/session/stop", s.handleStop)
	})

	return s
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("surface listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.Wrap(errors.ErrServerStart, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrServerShutdown, err)
	}

	return <-errCh
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Status())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInvalidArgument, err))
		return
	}

	if err := s.controller.Start(req.TaskName); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, s.controller.Status())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	res, err := s.controller.Stop()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stopResponse{
		Path:    res.Path,
		Rows:    res.Rows,
		Message: s.controller.Status().Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	writeJSON(w, httpStatusFor(code), errorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

// httpStatusFor maps application error codes to HTTP statuses. Every error
// reaches the surface as status text; none are fatal.
func httpStatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrEmptyTaskName, errors.ErrInvalidArgument, errors.ErrNoSession:
		return http.StatusBadRequest
	case errors.ErrSessionActive, errors.ErrNotReady, errors.ErrEmptyRecording:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
