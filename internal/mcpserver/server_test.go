package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	err := errors.New("open /home/user/schemas/person.yaml: no such file or directory")
	assert.Equal(t, "open <path>: no such file or directory", sanitizeError(err))
	assert.Equal(t, "", sanitizeError(nil))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 0, 0))
	assert.Equal(t, []int{2, 3}, paginate(items, 1, 2))
	assert.Equal(t, []int{5}, paginate(items, 4, 10))
	assert.Nil(t, paginate(items, 5, 2))
	assert.Nil(t, paginate(items, -1, 2))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))

	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CRDTOOLS_TEST_BOOL", "true")
	assert.True(t, envBool("CRDTOOLS_TEST_BOOL", false))
	t.Setenv("CRDTOOLS_TEST_BOOL", "nope")
	assert.False(t, envBool("CRDTOOLS_TEST_BOOL", false))
	assert.True(t, envBool("CRDTOOLS_TEST_BOOL_UNSET", true))

	t.Setenv("CRDTOOLS_TEST_INT", "42")
	assert.Equal(t, 42, envInt("CRDTOOLS_TEST_INT", 7))
	t.Setenv("CRDTOOLS_TEST_INT", "-3")
	assert.Equal(t, 7, envInt("CRDTOOLS_TEST_INT", 7))
	assert.Equal(t, 7, envInt("CRDTOOLS_TEST_INT_UNSET", 7))
}
