package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 2, PerPage: 500}
	p.Validate()
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 100, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 35)
	assert.Equal(t, 4, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(4, 10, 35)
	assert.False(t, pg.HasNext)
}

func TestSlicePagesInMemory(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	result := Slice(items, &PaginationParams{Page: 1, PerPage: 3})
	assert.Equal(t, []int{1, 2, 3}, result.Items)
	assert.Equal(t, int64(7), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)

	result = Slice(items, &PaginationParams{Page: 3, PerPage: 3})
	assert.Equal(t, []int{7}, result.Items)
	assert.False(t, result.Pagination.HasNext)
}

func TestSliceClampsOutOfRangePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	result := Slice(items, &PaginationParams{Page: 99, PerPage: 2})
	require.NotEmpty(t, result.Items)
	assert.Equal(t, []int{5}, result.Items)
	assert.Equal(t, 3, result.Pagination.CurrentPage)
}

func TestSliceEmptyList(t *testing.T) {
	result := Slice([]int{}, &PaginationParams{Page: 1, PerPage: 10})
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.Pagination.Total)
	assert.Equal(t, 0, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
}
