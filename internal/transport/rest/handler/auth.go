package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"stepsurvey/internal/service"
)

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service errors to HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidChoice), errors.Is(err, service.ErrConsentRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotOnLastQuestion):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
