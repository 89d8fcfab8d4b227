package envvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool(t *testing.T) {
	t.Setenv("ENVVAR_TEST_BOOL", "true")
	v, ok := Bool("ENVVAR_TEST_BOOL")
	assert.True(t, ok)
	assert.True(t, v)

	t.Setenv("ENVVAR_TEST_BOOL", "maybe")
	v, ok = Bool("ENVVAR_TEST_BOOL", true)
	assert.False(t, ok)
	assert.True(t, v)

	v, ok = Bool("ENVVAR_TEST_UNSET")
	assert.False(t, ok)
	assert.False(t, v)
}

func TestString(t *testing.T) {
	t.Setenv("ENVVAR_TEST_STRING", "production")
	s, ok := String("ENVVAR_TEST_STRING", "test")
	assert.True(t, ok)
	assert.Equal(t, "production", s)

	s, ok = String("ENVVAR_TEST_UNSET", "test")
	assert.False(t, ok)
	assert.Equal(t, "test", s)
}
