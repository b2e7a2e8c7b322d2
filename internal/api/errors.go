package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"uml-generator/internal/services"
	"uml-generator/internal/workflow"
)

type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrSessionNotFound),
		errors.Is(err, errStoryNotFound),
		errors.Is(err, errSprintNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoStories),
		errors.Is(err, services.ErrUnknownDiagramKind):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrExtractionFormat),
		errors.Is(err, services.ErrSchemaViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrExternalService):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	} else {
		s.log.WithError(err).Debug("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
