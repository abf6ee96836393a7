package lib

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLink(pageNumber, pageSize int) string {
	return fmt.Sprintf("/api/Product?pageNumber=%d&pageSize=%d", pageNumber, pageSize)
}

func TestNewPageLinks(t *testing.T) {
	tests := []struct {
		name       string
		pageNumber int
		wantNext   string
		wantPrev   string
	}{
		{"first page", 1, "/api/Product?pageNumber=2&pageSize=10", ""},
		{"middle page", 2, "/api/Product?pageNumber=3&pageSize=10", "/api/Product?pageNumber=1&pageSize=10"},
		{"last page", 3, "", "/api/Product?pageNumber=2&pageSize=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPage([]int{1, 2}, tt.pageNumber, 10, 25, testLink)
			require.NoError(t, err)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 25, page.TotalRecords)
			assert.Equal(t, tt.wantNext, page.NextPageURL)
			assert.Equal(t, tt.wantPrev, page.PreviousPageURL)
		})
	}
}

func TestNewPageRejectsZeroPageSize(t *testing.T) {
	_, err := NewPage([]int{}, 1, 0, 25, testLink)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = NewPage([]int{}, 0, 10, 25, testLink)
	assert.ErrorIs(t, err, ErrInvalidPageNumber)
}

func TestNewPageEmpty(t *testing.T) {
	page, err := NewPage[int](nil, 1, 10, 0, testLink)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.NextPageURL)
	assert.Empty(t, page.PreviousPageURL)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		records, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{9, 1, 9},
	}
	for _, tt := range tests {
		got, err := TotalPages(tt.records, tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "records=%d size=%d", tt.records, tt.size)
	}
}

func TestMapPage(t *testing.T) {
	out := MapPage([]int{1, 2, 3}, func(v *int) string { return fmt.Sprint(*v * 2) })
	assert.Equal(t, []string{"2", "4", "6"}, out)
}
