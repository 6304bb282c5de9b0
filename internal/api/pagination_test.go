package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "empty", page: 1, limit: 10, total: 0, totalPages: 0},
		{name: "single page", page: 1, limit: 10, total: 7, totalPages: 1},
		{name: "first of many", page: 1, limit: 10, total: 25, totalPages: 3, hasNext: true},
		{name: "middle", page: 2, limit: 10, total: 25, totalPages: 3, hasNext: true, hasPrev: true},
		{name: "last", page: 3, limit: 10, total: 25, totalPages: 3, hasPrev: true},
		{name: "exact multiple", page: 2, limit: 5, total: 10, totalPages: 2, hasPrev: true},
		{name: "clamped page", page: 0, limit: 5, total: 10, totalPages: 2, hasNext: true},
		{name: "huge limit", page: 1, limit: math.MaxInt, total: 3, totalPages: 1},
		{name: "huge page", page: math.MaxInt, limit: 2, total: 3, totalPages: 2, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginatedResponse[int](nil, tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.NotNil(t, p.Items)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	p := Paginate(items, 2, 2)
	assert.Equal(t, []string{"c", "d"}, p.Items)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = Paginate(items, 3, 2)
	assert.Equal(t, []string{"e"}, p.Items)
	assert.False(t, p.HasNext)

	p = Paginate(items, 9, 2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 5, p.Total)
}

func TestPaginateExtremeBounds(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, math.MaxInt/2+2, 2)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext)

	p = Paginate(items, math.MaxInt, math.MaxInt)
	assert.Empty(t, p.Items)

	p = Paginate(items, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 1, p.TotalPages)
}

func TestAppErrorMessage(t *testing.T) {
	err := &AppError{Code: CodeNotFound, Message: "template not found"}
	assert.Equal(t, "template not found", err.Error())

	err.Details = "postgres"
	assert.Equal(t, "template not found: postgres", err.Error())
}
