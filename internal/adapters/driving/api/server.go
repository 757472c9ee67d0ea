// Package api exposes the document question-answering services over a
// small JSON REST interface.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zioncloud/docqa/internal/core/ports/driven"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/logger"
)

// Services groups everything the API serves. History and Feedback are
// optional; their endpoints answer 404 when absent.
type Services struct {
	Collections driving.CollectionService
	Ingest      driving.IngestService
	Retrieval   driving.RetrievalService
	Answer      driving.AnswerService
	Feedback    driven.FeedbackSink
	History     driven.AnswerStore
}

// Server is the HTTP front end.
type Server struct {
	services Services
	router   chi.Router
	http     *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, services Services) *Server {
	s := &Server{services: services}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/create_collection", s.handleCreateCollection)
	r.Delete("/collection/{name}", s.handleDeleteCollection)
	r.Post("/upload_file", s.handleUploadFile)
	r.Post("/upload_url", s.handleUploadURL)
	r.Post("/search", s.handleSearch)
	r.Post("/generate", s.handleGenerate)
	r.Post("/feedback", s.handleFeedback)
	r.Get("/history", s.handleHistory)

	s.router = r
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening on %s", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
