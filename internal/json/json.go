// Package json contains utilities for strict JSON request decoding and
// response encoding.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes a single JSON value and fails if anything follows it.
func DecodeJSON(dst any, decoder *json.Decoder) error {
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// Decode reads one JSON value from r into dst. Unknown object fields
// are rejected.
func Decode(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return DecodeJSON(dst, decoder)
}

// Encode writes v as the JSON body of a response with the given status.
func Encode(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}
