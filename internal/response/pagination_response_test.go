package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name                   string
		page, size, max, total int
		want                   Pagination
	}{
		{
			name: "first page", page: 1, size: 2, max: 10, total: 5,
			want: Pagination{Page: 1, PageSize: 2, TotalPages: 3, TotalItems: 5, HasMore: true, From: 1, To: 2},
		},
		{
			name: "last partial page", page: 3, size: 2, max: 10, total: 5,
			want: Pagination{Page: 3, PageSize: 2, TotalPages: 3, TotalItems: 5, From: 5, To: 5},
		},
		{
			name: "past the end", page: 9, size: 2, max: 10, total: 5,
			want: Pagination{Page: 9, PageSize: 2, TotalPages: 3, TotalItems: 5},
		},
		{
			name: "clamped", page: 0, size: 500, max: 100, total: 0,
			want: Pagination{Page: 1, PageSize: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewPagination(tt.page, tt.size, tt.max, tt.total))
		})
	}
}

func TestPagination_Bounds(t *testing.T) {
	start, end := NewPagination(2, 3, 10, 7).Bounds()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
}
