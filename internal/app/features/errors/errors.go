// Package errors centralizes JSON error responses for the API features:
// handlers report what went wrong once, the logger records it with request
// context, and the client sees a stable envelope.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the error body every failed API call returns.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorLogger logs handler failures and writes the JSON error envelope.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError records an internal failure and answers 500. userMsg is what
// the client sees; the underlying error stays in the log.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest records a client error and answers 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Warn(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusBadRequest, userMsg)
}

// NotFound answers 404 without logging; missing documents are routine.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, userMsg string) {
	writeJSON(w, http.StatusNotFound, userMsg)
}

// Conflict answers 409 without logging; duplicates are routine.
func (e *ErrorLogger) Conflict(w http.ResponseWriter, userMsg string) {
	writeJSON(w, http.StatusConflict, userMsg)
}

// Unauthorized answers 401.
func (e *ErrorLogger) Unauthorized(w http.ResponseWriter, userMsg string) {
	writeJSON(w, http.StatusUnauthorized, userMsg)
}

func writeJSON(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Status: "error", Message: msg})
}
