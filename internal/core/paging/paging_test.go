package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagesAndClamp(t *testing.T) {
	assert.Equal(t, 1, Pages(0))
	assert.Equal(t, 1, Pages(100))
	assert.Equal(t, 2, Pages(101))

	assert.Equal(t, 1, Clamp(0, 250))
	assert.Equal(t, 1, Clamp(-3, 250))
	assert.Equal(t, 3, Clamp(9, 250))
	assert.Equal(t, 2, Clamp(2, 250))
	assert.Equal(t, 1, Clamp(5, 0))
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{1}, Window(1, 1))
	assert.Equal(t, []int{1, 2, 3}, Window(2, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(1, 10))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, Window(5, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, Window(10, 10))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, Window(42, 10))
}

func TestSlice(t *testing.T) {
	rows := make([]int, 250)
	for i := range rows {
		rows[i] = i
	}
	assert.Len(t, Slice(rows, 1), 100)
	assert.Equal(t, 200, Slice(rows, 3)[0])
	assert.Len(t, Slice(rows, 3), 50)
	assert.Len(t, Slice(rows, 99), 50, "clamped to the last page")
	assert.Empty(t, Slice([]int{}, 1))
}
