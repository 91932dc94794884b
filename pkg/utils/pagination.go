package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
	// Requested is false when the client sent neither page nor limit, in
	// which case the whole list is returned.
	Requested bool
}

// ParsePageRequest reads ?page= and ?limit=. Missing or invalid values fall
// back to page 1 and DefaultPageSize.
func ParsePageRequest(c echo.Context) PageRequest {
	rawPage, rawLimit := c.QueryParam("page"), c.QueryParam("limit")

	req := PageRequest{Page: 1, PageSize: DefaultPageSize, Requested: rawPage != "" || rawLimit != ""}
	if page, err := strconv.Atoi(rawPage); err == nil && page > 0 {
		req.Page = page
	}
	if size, err := strconv.Atoi(rawLimit); err == nil && size > 0 && size <= MaxPageSize {
		req.PageSize = size
	}
	return req
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page returns the slice of items the request selects. A page past the end
// is empty, never nil.
func Page[T any](r PageRequest, items []T) []T {
	start := r.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + r.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
