package handlers

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the error envelope. Clients branch on these,
// so they are part of the API surface and must stay stable.
const (
	codeInvalidRequest      = "invalid_request"
	codeInvalidQuery        = "invalid_query"
	codeInvalidSelection    = "invalid_selection"
	codeTripUnavailable     = "trip_unavailable"
	codeSessionNotFound     = "session_not_found"
	codeProviderUnavailable = "provider_unavailable"
	codeMethodNotAllowed    = "method_not_allowed"
	codeInternal            = "internal_error"
)

// errorEnvelope is the body every failed request gets.
type errorEnvelope struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Code: code, Error: message})
}
