package server

import (
	"encoding/json"
	"net/http"

	"melodex/logger"
)

// Error codes reported to clients.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidID        = "INVALID_ID"
	CodeSongNotFound     = "SONG_NOT_FOUND"
	CodeMissingParameter = "MISSING_PARAMETER"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
)

// APIError is the failure payload of the response envelope.
type APIError struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

func respondSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, APIResponse{Success: true, Data: data, Message: message})
}

// respondList is respondSuccess with an element count alongside the data.
func respondList(w http.ResponseWriter, status int, data interface{}, count int, message string) {
	writeJSON(w, status, APIResponse{Success: true, Data: data, Message: message, Count: &count})
}

func respondError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Message: message, Code: code, Details: details},
	})
}
