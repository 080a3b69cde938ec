package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	testCases := map[string]string{
		"MaxTimes":    "max_times",
		"maxTimes":    "max_times",
		"Jitter":      "jitter",
		"HTTPTimeout": "http_timeout",
		"IOThreads":   "io_threads",
		"max-times":   "max_times",
		"max_times":   "max_times",
		"S3":          "s3",
		"v2Endpoint":  "v2_endpoint",
		"":            "",
	}

	for input, expected := range testCases {
		assert.Equal(t, expected, SnakeCase(input), input)
	}
}

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "Retry", PascalCase("retry"))
	assert.Equal(t, "MaxRetryX", PascalCase("max-retry_x"))
	assert.Equal(t, "S3", PascalCase("s3"))
	assert.Equal(t, "ConcurrentLimit", PascalCase("concurrent_limit"))
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "maxTimes", CamelCase("max_times"))
	assert.Equal(t, "jitter", CamelCase("jitter"))
	assert.Equal(t, "httpTimeout", CamelCase("http_timeout"))
	assert.Equal(t, "", CamelCase(""))
}

func TestSafeIdent(t *testing.T) {
	assert.Equal(t, "typeArg", SafeIdent("type"))
	assert.Equal(t, "lenArg", SafeIdent("len"))
	assert.Equal(t, "kwargsArg", SafeIdent("kwargs", "kwargs", "l"))
	assert.Equal(t, "maxTimes", SafeIdent("maxTimes", "kwargs"))
	assert.Equal(t, "arg", SafeIdent(""))
}
