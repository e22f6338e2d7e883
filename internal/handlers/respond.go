package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/cryptolio/backend/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses: validation 400,
// not found 404, external service 502, anything else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "validation_error"})
	case apperrors.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case apperrors.IsExternalService(err):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Code: "external_service_error"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal_error"})
	}
}
