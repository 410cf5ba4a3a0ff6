// Package error defines the JSON error body returned by every endpoint.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the body of a failed response. Fields is only set for
// validation failures and maps a request field to its messages.
type Error struct {
	Status  int                 `json:"status"`
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	ErrorID string              `json:"error_id"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func encode(w http.ResponseWriter, body *Error) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("encoding error body: %w", err)
	}
	return nil
}

// EncodeError writes an error response whose status is derived from code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return encode(w, &Error{
		Status:  status,
		Code:    code,
		Message: message,
		ErrorID: errorID,
	})
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}

// EncodeValidationError writes a 400 carrying the offending fields.
func EncodeValidationError(w http.ResponseWriter, fields map[string][]string, errorID string) error {
	return encode(w, &Error{
		Status:  ValidationFailed.StatusCode(),
		Code:    ValidationFailed,
		Message: "request validation failed",
		ErrorID: errorID,
		Fields:  fields,
	})
}
