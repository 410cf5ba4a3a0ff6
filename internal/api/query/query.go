// Package query parses the query string parameters shared by list
// endpoints.
package query

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const MaxLimit = 100

var ErrInvalidParam = errors.New("invalid query parameter")

// ParamError names the offending parameter.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}

// Fields renders the error in the field map shape of validation errors.
func (e *ParamError) Fields() map[string][]string {
	return map[string][]string{e.Param: {e.Reason}}
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int32 {
	return int32((p.Number - 1) * p.Limit)
}

// ParsePage reads page and limit. A missing limit falls back to
// defaultLimit; limits above MaxLimit are clamped.
func ParsePage(values url.Values, defaultLimit int) (Page, error) {
	p := Page{Number: 1, Limit: defaultLimit}
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, &ParamError{Param: "page", Reason: "must be a positive integer"}
		}
		p.Number = n
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, &ParamError{Param: "limit", Reason: "must be a positive integer"}
		}
		p.Limit = n
	}
	p.Limit = min(p.Limit, MaxLimit)
	if int64(p.Number-1)*int64(p.Limit) > math.MaxInt32 {
		return Page{}, &ParamError{Param: "page", Reason: "is out of range"}
	}
	return p, nil
}

// Bool reads a flag. "1" and "true" enable it, "0" and "false" or an
// absent parameter leave it off.
func Bool(values url.Values, name string) (bool, error) {
	switch strings.ToLower(values.Get(name)) {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	}
	return false, &ParamError{Param: name, Reason: "must be one of 0, 1, true, false"}
}

// IDs reads every occurrence of a repeated integer parameter.
func IDs(values url.Values, name string) ([]int64, error) {
	raw := values[name]
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			return nil, &ParamError{Param: name, Reason: "must be a list of positive integers"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Strings reads every non-empty occurrence of a repeated parameter.
func Strings(values url.Values, name string) []string {
	out := make([]string, 0, len(values[name]))
	for _, v := range values[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NoLimit is returned by Limit when the parameter is absent.
const NoLimit int32 = -1

// Limit reads an optional non-negative cap such as recipes_limit. An
// absent parameter yields NoLimit; an explicit zero is a cap of zero.
func Limit(values url.Values, name string) (int32, error) {
	raw := values.Get(name)
	if raw == "" {
		return NoLimit, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 {
		return 0, &ParamError{Param: name, Reason: "must be a non-negative integer"}
	}
	return int32(n), nil
}

// ID parses a positive path identifier.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &ParamError{Param: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

// SelfURL is the absolute URL of r as seen through origin. It anchors
// the next and previous links of paginated responses.
func SelfURL(r *http.Request, origin string) *url.URL {
	u := *r.URL
	if base, err := url.Parse(origin); err == nil && base.Host != "" {
		u.Scheme = base.Scheme
		u.Host = base.Host
	} else if r.Host != "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		u.Host = r.Host
	}
	return &u
}
