// internal/app/system/httpjson/httpjson.go

// Package httpjson implements the JSON response envelope used by every API
// endpoint: {"data": ..., "error": {"code": ..., "message": ...}}.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Error codes surfaced in API error responses.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInvalid      = "unprocessable"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_error"
)

// APIError is the error object in the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the standardized response shape. On success Data is set and
// Error is nil; on failure Data is nil and Error is set.
type Envelope struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// Write encodes data inside the envelope with the given status code.
func Write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: data})
}

// WriteError encodes an error envelope with the given status and code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: &APIError{Code: code, Message: message}})
}

// maxBodyBytes caps request bodies; large uploads go elsewhere.
const maxBodyBytes = 1 << 20

// Decode reads the request body into dst. On failure it writes a bad_request
// response and returns false, so handlers can simply return.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, CodeBadRequest, "empty request body")
			return false
		}
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "malformed JSON: "+err.Error())
		return false
	}
	return true
}
