package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, PreviewJSON(map[string]int{"a": 1}, 0))
	assert.Equal(t, `[1,2...`, PreviewJSON([]int{1, 2, 3, 4}, 4))
	assert.Equal(t, "null", PreviewJSON(nil, 10))
	assert.Equal(t, "<func()>", PreviewJSON(func() {}, 10))
}
