// Package listing implements the pagination and sort rules shared by every
// paginated collection endpoint: page-window math, has-more computation, and
// the whitelisted post sort modes.
package listing

import (
	"net/url"
	"strconv"
)

// Default limits per resource kind.
const (
	DefaultPublicPostLimit = 2
	DefaultAdminLimit      = 10
)

// Params is a validated page window. Page and Limit are always ≥ 1.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit from query parameters. Missing, non-numeric,
// or non-positive values silently fall back to defaults; this mirrors the
// existing API contract rather than rejecting bad input.
func Parse(q url.Values, defaultLimit int) Params {
	return Params{
		Page:  positiveOr(q.Get("page"), 1),
		Limit: positiveOr(q.Get("limit"), defaultLimit),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Offset returns the number of rows to skip for this page window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore reports whether rows exist beyond the given page window.
func HasMore(p Params, total int) bool {
	return p.Page*p.Limit < total
}

// Sort is a whitelisted post ordering. Values map directly to ORDER BY
// clauses, so nothing outside the whitelist may ever reach OrderBy.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortPopular  Sort = "popular"
	SortTrending Sort = "trending"
)

// ParseSort maps a query value to a Sort, defaulting to newest for unknown
// or empty input.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortOldest, SortPopular, SortTrending:
		return Sort(raw)
	default:
		return SortNewest
	}
}

// OrderBy returns the ORDER BY clause for this sort mode. Every mode ends in
// an id tie-break so that pagination stays deterministic when rows share a
// timestamp or visit count.
func (s Sort) OrderBy() string {
	switch s {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortPopular:
		return "visit DESC, id DESC"
	case SortTrending:
		return "visit DESC, created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}
