package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		page     int
		limit    int
		wantData []int
		wantMeta PageMeta
	}{
		{
			name: "middle page", total: 10, page: 2, limit: 4,
			wantData: []int{4, 5, 6, 7},
			wantMeta: PageMeta{Total: 10, Page: 2, Limit: 4, TotalPages: 3, HasNextPage: true, HasPrevPage: true},
		},
		{
			name: "last partial page", total: 10, page: 3, limit: 4,
			wantData: []int{8, 9},
			wantMeta: PageMeta{Total: 10, Page: 3, Limit: 4, TotalPages: 3, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "first page", total: 10, page: 1, limit: 4,
			wantData: []int{0, 1, 2, 3},
			wantMeta: PageMeta{Total: 10, Page: 1, Limit: 4, TotalPages: 3, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "past the end", total: 10, page: 5, limit: 4,
			wantData: []int{},
			wantMeta: PageMeta{Total: 10, Page: 5, Limit: 4, TotalPages: 3, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "defaults for invalid page and limit", total: 6, page: 0, limit: 0,
			wantData: []int{0, 1, 2, 3},
			wantMeta: PageMeta{Total: 6, Page: 1, Limit: DefaultLimit, TotalPages: 2, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "empty list", total: 0, page: 1, limit: 4,
			wantData: []int{},
			wantMeta: PageMeta{Total: 0, Page: 1, Limit: 4, TotalPages: 0, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "huge page", total: 3, page: math.MaxInt, limit: 4,
			wantData: []int{},
			wantMeta: PageMeta{Total: 3, Page: math.MaxInt, Limit: 4, TotalPages: 1, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "huge page and limit", total: 3, page: math.MaxInt / 2, limit: math.MaxInt,
			wantData: []int{},
			wantMeta: PageMeta{Total: 3, Page: math.MaxInt / 2, Limit: math.MaxInt, TotalPages: 1, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "huge limit on first page", total: 3, page: 1, limit: math.MaxInt,
			wantData: []int{0, 1, 2},
			wantMeta: PageMeta{Total: 3, Page: 1, Limit: math.MaxInt, TotalPages: 1, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "exact multiple", total: 8, page: 2, limit: 4,
			wantData: []int{4, 5, 6, 7},
			wantMeta: PageMeta{Total: 8, Page: 2, Limit: 4, TotalPages: 2, HasNextPage: false, HasPrevPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, meta := Paginate(seq(tt.total), tt.page, tt.limit)
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}
