package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 35)

	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(35), info.Total)
	assert.Equal(t, 4, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestNewPageInfoFirstPage(t *testing.T) {
	info := NewPageInfo(1, 10, 5)

	assert.Equal(t, 1, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}

func TestNewPageInfoLastPage(t *testing.T) {
	info := NewPageInfo(4, 10, 35)

	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestNewPageInfoEmpty(t *testing.T) {
	info := NewPageInfo(1, 10, 0)

	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}
