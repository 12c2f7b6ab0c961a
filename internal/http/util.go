package httpx

import (
	"net/http"
	"strconv"
)

// parseIntQuery parses an integer query parameter, returning the fallback
// when the parameter is absent or malformed.
func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// ParseLimitOffset extracts limit/offset pagination from the query string,
// clamping limit to [1, MaxListLimit] and offset to >= 0.
func ParseLimitOffset(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = parseIntQuery(r, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset = parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
