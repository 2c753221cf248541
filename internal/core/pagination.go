// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ListParamsFromRequest reads page and page_size from the query string.
// The legacy limit parameter is accepted as an alias for page_size.
func ListParamsFromRequest(r *http.Request) ListParams {
	size := ParseIntQuery(r, "page_size", 0)
	if size == 0 {
		size = ParseIntQuery(r, "limit", DefaultPageSize)
	}

	p := ListParams{
		Page:     ParseIntQuery(r, "page", 1),
		PageSize: size,
	}
	p.Normalize()
	return p
}

func ParseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// EscapeLike escapes LIKE metacharacters so user input matches literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

// ContainsPattern builds an ILIKE pattern matching s anywhere.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(strings.TrimSpace(s)) + "%"
}

// ParseID validates a path identifier.
func ParseID(raw, name string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", SchemaError(name + " must be a valid UUID")
	}
	return id.String(), nil
}
