package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Health represents the health check response
type Health struct {
	Status    string `json:"status"`
	Business  string `json:"business"`
	Version   string `json:"version"`
	Store     string `json:"store"`
	Timestamp string `json:"timestamp"`
}

// Version is reported by the health check
const Version = "1.0.0"

// healthCheckHandler handles the health check endpoint
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	health := Health{
		Status:    "ok",
		Business:  s.config.Business.Name,
		Version:   Version,
		Store:     s.config.Store.Driver,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if err := s.app.Ping(r.Context()); err != nil {
		s.logger.Warn("Store is unreachable", "error", err)
		health.Status = "degraded"

		s.respondWithJSON(w, http.StatusServiceUnavailable, ApiResponse{Success: false, Data: health, Error: "store unreachable"})
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    health,
	})
}

// decodeJSON reads the request body into v, rejecting unknown fields
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}

// respondWithAppError writes err with the status it carries. Errors without
// one are logged and reported as a generic internal error.
func (s *Server) respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.StatusCode(err)
	message := err.Error()

	var appErr *apperrors.AppError
	switch {
	case !errors.As(err, &appErr):
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal server error"
	case code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable:
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", errors.Unwrap(appErr), "context", appErr.Context)
	}

	if apperrors.IsRetryable(err) {
		w.Header().Set("Retry-After", "5")
	}

	s.respondWithError(w, code, message)
}

// respondWithPNG renders into a buffer first so a failed render can still send a JSON error
func (s *Server) respondWithPNG(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer

	if err := render(&buf); err != nil {
		s.respondWithAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// respondWithError sends a JSON response with an error message
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, ApiResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithJSON sends a JSON response
func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)

	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
