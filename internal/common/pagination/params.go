package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams reads "page" and "limit" from the request query string.
// Missing parameters take the configured defaults; malformed or out of range
// parameters are an error.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}
	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	// The row offset of the page must fit in an int.
	if params.Page-1 > math.MaxInt/params.Limit {
		return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
	}

	return params, nil
}
