package present

import (
	"net/url"
	"strconv"
)

// Page is one page of a paginated listing. Next and Previous are
// absolute URLs, or null on the last and first page.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the page with 1-based number page out of count items.
// self is the URL of the current request; the neighbor links keep its
// query and replace the page parameter.
func NewPage[T any](results []T, count int64, self *url.URL, page, limit int) Page[T] {
	if results == nil {
		results = []T{}
	}
	p := Page[T]{Count: count, Results: results}
	if self == nil || limit <= 0 {
		return p
	}

	if int64(page)*int64(limit) < count {
		next := pageURL(self, page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := pageURL(self, page-1)
		p.Previous = &prev
	}
	return p
}

func pageURL(self *url.URL, page int) string {
	u := *self
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
