// Package apiutil holds small helpers shared by the JSON API features.
package apiutil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the success body every API call returns.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON writes a success envelope with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, code int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Envelope{Status: "success", Message: message, Data: data})
}

// DecodeJSON parses a request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
