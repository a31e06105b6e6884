package api

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope. Success responses write their
// payload directly, per the UI contract.
type errorBody struct {
	Error             string `json:"error"`
	Detail            string `json:"detail,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorBody{Error: message})
}

func respondUpstreamError(w http.ResponseWriter, message, detail string) {
	writeJSON(w, http.StatusBadGateway, errorBody{Error: message, Detail: detail})
}

func respondRateLimited(w http.ResponseWriter, retryAfterSeconds int) {
	writeJSON(w, http.StatusTooManyRequests, errorBody{
		Error:             "too many requests",
		RetryAfterSeconds: retryAfterSeconds,
	})
}
