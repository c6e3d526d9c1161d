package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("CONTENT_TEST_STR", "")
	assert.Equal(t, "fallback", GetEnvString("CONTENT_TEST_STR", "fallback"))

	t.Setenv("CONTENT_TEST_STR", "value")
	assert.Equal(t, "value", GetEnvString("CONTENT_TEST_STR", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("CONTENT_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("CONTENT_TEST_INT", 7))

	t.Setenv("CONTENT_TEST_INT", "forty-two")
	assert.Equal(t, 7, GetEnvInt("CONTENT_TEST_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("CONTENT_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("CONTENT_TEST_BOOL", false))

	t.Setenv("CONTENT_TEST_BOOL", "0")
	assert.False(t, GetEnvBool("CONTENT_TEST_BOOL", true))

	t.Setenv("CONTENT_TEST_BOOL", "maybe")
	assert.True(t, GetEnvBool("CONTENT_TEST_BOOL", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CONTENT_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("CONTENT_TEST_DUR", time.Second))

	t.Setenv("CONTENT_TEST_DUR", "soon")
	assert.Equal(t, time.Second, GetEnvDuration("CONTENT_TEST_DUR", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("CONTENT_TEST_LIST", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("CONTENT_TEST_LIST", nil))

	t.Setenv("CONTENT_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("CONTENT_TEST_LIST", []string{"x"}))
}
