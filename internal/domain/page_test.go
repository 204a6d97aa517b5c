package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{10, 11, 12}, 1, 3, 8)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.Size)
	assert.Equal(t, 8, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.First)
	assert.False(t, page.Last)

	last := NewPage([]int{16, 17}, 2, 3, 8)
	assert.True(t, last.Last)
	assert.False(t, last.First)
}

func TestNewPageEmptyResult(t *testing.T) {
	page := NewPage([]int(nil), 0, 10, 0)
	assert.Equal(t, 1, page.TotalPages, "empty set still renders one page")
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestPaginateLocalTotalPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantPages int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder adds a page", 21, 10, 3},
		{"single short page", 3, 10, 1},
		{"empty set has one page", 0, 10, 1},
		{"size one", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PaginateLocal(intRange(tt.total), 0, tt.size)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.total, page.TotalElements)
		})
	}
}

func TestPaginateLocalClampsPageIndex(t *testing.T) {
	items := intRange(25)

	// Index past the end clamps to the last page, and First/Last are computed
	// from the clamped index rather than the requested one.
	page := PaginateLocal(items, 99, 10)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page.Content)
	assert.False(t, page.First)
	assert.True(t, page.Last)

	page = PaginateLocal(items, -5, 10)
	assert.Equal(t, 0, page.Number)
	assert.True(t, page.First)
	assert.False(t, page.Last)
}

func TestPaginateLocalSlices(t *testing.T) {
	items := intRange(25)

	page := PaginateLocal(items, 1, 10)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page.Content)
	assert.False(t, page.First)
	assert.False(t, page.Last)
}

func TestPaginateLocalEmptySet(t *testing.T) {
	page := PaginateLocal([]int{}, 4, 10)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}
