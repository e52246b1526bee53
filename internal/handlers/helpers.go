package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/white/lead-management/internal/repositories"
)

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes an error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithStoreError maps repository errors onto HTTP statuses: malformed
// identifiers are a client error, missing documents are a distinct not-found
// outcome, everything else is a generic failure.
func respondWithStoreError(w http.ResponseWriter, err error) {
	switch {
	case repositories.IsInvalidID(err):
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID")
	case repositories.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, "Lead not found")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
