package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceShapes(t *testing.T) {
	assert.True(t, IsEmpty([]string(nil)))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{1, 2}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)
}

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange(-128, int64(-128), 127))
	assert.True(t, IsInRange(0.0, 0.5, 1.0))
	assert.False(t, IsInRange(0, 256, 255))
}
