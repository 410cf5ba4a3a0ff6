package recipe

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Validation failure kinds. A ValidationError wraps the first kind
// detected while checking a payload.
var (
	ErrInvalidField     = errors.New("invalid field")
	ErrEmptyCollection  = errors.New("empty collection")
	ErrOutOfRange       = errors.New("value out of range")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrInvalidReference = errors.New("invalid reference")
)

var (
	ErrNotFound  = errors.New("recipe not found")
	ErrForbidden = errors.New("recipe not owned by user")
)

// ValidationError collects every violation found in a recipe payload,
// keyed by payload field.
type ValidationError struct {
	Kind   error
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func (e *ValidationError) add(kind error, field, message string) {
	if e.Kind == nil {
		e.Kind = kind
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}
