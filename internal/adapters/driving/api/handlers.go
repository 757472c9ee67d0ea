package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCollectionExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrDimensionMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrEmbeddingProvider),
		errors.Is(err, domain.ErrLLMProvider),
		errors.Is(err, domain.ErrContentRejected),
		errors.Is(err, domain.ErrVectorStore):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{Detail: err.Error()})
}

// decode parses the request body into dst.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CollectionName string `json:"collection_name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CollectionName == "" {
		writeError(w, fmt.Errorf("%w: collection_name is required", domain.ErrInvalidInput))
		return
	}

	if err := s.services.Collections.Create(r.Context(), req.CollectionName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Collection %s created successfully", req.CollectionName),
	})
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.services.Collections.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Collection %s deleted successfully", name),
	})
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName       string `json:"file_name"`
		CollectionName string `json:"collection_name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.FileName == "" || req.CollectionName == "" {
		writeError(w, fmt.Errorf("%w: file_name and collection_name are required", domain.ErrInvalidInput))
		return
	}

	n, err := s.services.Ingest.IngestFile(r.Context(), req.FileName, req.CollectionName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "File upserted successfully",
		"documents_processed": n,
	})
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL            string `json:"url"`
		CollectionName string `json:"collection_name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.URL == "" || req.CollectionName == "" {
		writeError(w, fmt.Errorf("%w: url and collection_name are required", domain.ErrInvalidInput))
		return
	}

	n, err := s.services.Ingest.IngestURL(r.Context(), req.URL, req.CollectionName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "URL upserted successfully",
		"documents_processed": n,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query          string `json:"query"`
		CollectionName string `json:"collection_name"`
		Limit          int    `json:"limit"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CollectionName == "" {
		writeError(w, fmt.Errorf("%w: collection_name is required", domain.ErrInvalidInput))
		return
	}

	results, err := s.services.Retrieval.Search(r.Context(), req.Query, req.CollectionName, req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question       string `json:"question"`
		CollectionName string `json:"collection_name"`
		Limit          int    `json:"limit"`
		Model          string `json:"model"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Question == "" || req.CollectionName == "" {
		writeError(w, fmt.Errorf("%w: question and collection_name are required", domain.ErrInvalidInput))
		return
	}

	rec, err := s.services.Answer.Answer(r.Context(), req.Question, req.CollectionName, req.Limit, req.Model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"response":         rec.Answer,
		"source_documents": rec.Sources,
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.services.Feedback == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "feedback recording is not enabled"})
		return
	}

	var fb domain.Feedback
	if err := decode(r, &fb); err != nil {
		writeError(w, err)
		return
	}
	fb.CreatedAt = time.Now().UTC()

	if err := s.services.Feedback.Record(fb); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback recorded"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.services.History == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "answer history is not enabled"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit %q is not a number", domain.ErrInvalidInput, v))
			return
		}
		limit = n
	}

	records, err := s.services.History.ListAnswers(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.AnswerRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}
