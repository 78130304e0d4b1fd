package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tableingest/service/internal/core/domain"
)

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns 200 if the service is up
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{OK: true})
}

// handleProcess godoc
// @Summary      Ingest a document
// @Description  Converts the request body (a PDF or plain-text document) into a stream of RAG-ready documents
// @Tags         Ingest
// @Security     BearerAuth
// @Accept       application/octet-stream
// @Produce      json
// @Param        X-Filename  header  string  false  "Original filename; informs metadata.source and PDF detection"
// @Success      200  {array}  domain.Document
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /process [put]
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDomainError(w, domain.ErrInternal)
		return
	}
	if len(body) == 0 {
		writeDomainError(w, domain.ErrEmptyBody)
		return
	}

	source := r.Header.Get("X-Filename")
	contentType := r.Header.Get("Content-Type")

	docs, err := s.ingest.Process(r.Context(), body, source, contentType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a domain sentinel error to its HTTP status code and
// opaque message via errors.Is, the single point where core errors cross
// the HTTP boundary. Unrecognized errors are treated as internal.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "invalid bearer token")
	case errors.Is(err, domain.ErrEmptyBody):
		writeError(w, http.StatusBadRequest, "empty request body")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
