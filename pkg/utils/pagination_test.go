package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func requestWithQuery(query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/my-wishlists"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParsePageRequest(t *testing.T) {
	r := ParsePageRequest(requestWithQuery(""))
	assert.False(t, r.Requested)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, DefaultPageSize, r.PageSize)

	r = ParsePageRequest(requestWithQuery("?page=3&limit=5"))
	assert.True(t, r.Requested)
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 5, r.PageSize)
	assert.Equal(t, 10, r.Offset())

	r = ParsePageRequest(requestWithQuery("?page=-1&limit=500"))
	assert.True(t, r.Requested)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, DefaultPageSize, r.PageSize)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Page(PageRequest{Page: 2, PageSize: 2}, items))
	assert.Equal(t, []int{5}, Page(PageRequest{Page: 3, PageSize: 2}, items))

	past := Page(PageRequest{Page: 9, PageSize: 2}, items)
	assert.NotNil(t, past)
	assert.Empty(t, past)
}
