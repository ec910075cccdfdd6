// Package server implements the HTTP save API for page documents.
//
// The API is the external collaborator the persistence gateway talks to:
//
//	POST /api/save-page       accept and store a page document
//	GET  /api/page/{userID}   return the stored document
//
// Request bodies are validated against a JSON schema before anything
// touches the document store, so malformed payloads are rejected with a
// machine-readable error instead of partially-applied writes.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/page"
)

// Server serves the page save API.
type Server struct {
	store  DocStore
	logger *log.Logger
	router chi.Router
}

// Options configure the HTTP surface.
type Options struct {
	// ThrottleLimit caps concurrent in-flight requests. Zero disables
	// throttling.
	ThrottleLimit int
}

// New creates a server over the given document store.
func New(store DocStore, logger *log.Logger, opts Options) *Server {
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if opts.ThrottleLimit > 0 {
		r.Use(middleware.Throttle(opts.ThrottleLimit))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/save-page", s.handleSavePage)
		r.Get("/page/{userID}", s.handleGetPage)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("save API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleSavePage validates and stores a submitted page document.
func (s *Server) handleSavePage(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, 1<<20)

	raw, err := io.ReadAll(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "unreadable request body"))
		return
	}

	if err := ValidateSaveBody(raw); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var doc page.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidDocument, err, "undecodable document"))
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.logger.Error("store put failed", "user", doc.UserID, "err", err)
		s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "store page"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "saved",
		"elements": len(doc.Elements),
	})
}

// handleGetPage returns the stored document for a user.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	doc, err := s.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, errors.ErrCodePageNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.logger.Error("store get failed", "user", userID, "err", err)
		s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "load page"))
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// requestLogger logs each request with method, path, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
