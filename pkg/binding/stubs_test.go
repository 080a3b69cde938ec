package binding

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStubs(t *testing.T) {
	reg := NewRegistry()
	c := retryConstructor()
	c.Doc = "Create a new RetryLayer.\n\nReturns\n-------\nRetryLayer"
	reg.MustRegister(c)
	reg.MustRegister(s3Constructor())

	stubs := RenderStubs(reg, nil)
	require.Len(t, stubs, 2)

	expected := StubHeader + "\n\n" +
		"class RetryLayer:\n" +
		"    \"\"\"Create a new RetryLayer.\n\n    Returns\n    -------\n    RetryLayer\n    \"\"\"\n\n" +
		"    def __init__(self, *, jitter: bool = False, max_times: int | None = None) -> None: ...\n"
	assert.Equal(t, expected, stubs["example.com/app/layers"])

	assert.Contains(t, stubs["example.com/app/services"], "    def __init__(self, *, bucket: str) -> None: ...\n")
	assert.NotContains(t, stubs["example.com/app/services"], "\"\"\"")
}

func TestRenderStubs_Filter(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(retryConstructor())
	reg.MustRegister(s3Constructor())

	stubs := RenderStubs(reg, HasPrefix("example.com/app/services"))
	assert.Len(t, stubs, 1)
	assert.Contains(t, stubs, "example.com/app/services")
}

func TestRenderStubs_NoParams(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Constructor{
		Module: "bindings",
		Name:   "LoggingLayer",
		Kind:   KindLayer,
		New:    func(Kwargs) (any, error) { return nil, nil },
	})

	assert.Contains(t, RenderStubs(reg, nil)["bindings"], "    def __init__(self) -> None: ...\n")
}

func TestWriteStubs(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(retryConstructor())
	reg.MustRegister(s3Constructor())

	dir := filepath.Join(t.TempDir(), "stubs")
	written, err := WriteStubs(dir, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "layers.pyi"),
		filepath.Join(dir, "services.pyi"),
	}, written)

	data, err := os.ReadFile(filepath.Join(dir, "layers.pyi"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "class RetryLayer:")
}

func TestRenderStubs_ImportsQualifiedTypes(t *testing.T) {
	reg := NewRegistry()
	c := retryConstructor()
	c.Params = append(c.Params, Param{Name: "min_delay", Type: "datetime.timedelta", Default: "None"})
	reg.MustRegister(c)
	reg.MustRegister(s3Constructor())

	stubs := RenderStubs(reg, nil)
	assert.True(t, strings.HasPrefix(stubs["example.com/app/layers"], StubHeader+"\n\nimport datetime\n\nclass RetryLayer:\n"))
	assert.Contains(t, stubs["example.com/app/layers"], "min_delay: datetime.timedelta | None = None")
	assert.NotContains(t, stubs["example.com/app/services"], "import")
}

func TestWriteStubs_FileNameCollision(t *testing.T) {
	reg := NewRegistry()
	retry := retryConstructor()
	retry.Module = "example.com/a/bindings"
	s3 := s3Constructor()
	s3.Module = "example.com/b/bindings"
	reg.MustRegister(retry)
	reg.MustRegister(s3)

	dir := filepath.Join(t.TempDir(), "stubs")
	written, err := WriteStubs(dir, reg, nil)
	require.ErrorIs(t, err, ErrStubFileCollision)
	assert.Contains(t, err.Error(), "example.com/a/bindings and example.com/b/bindings both map to bindings.pyi")
	assert.Empty(t, written)
	assert.NoFileExists(t, filepath.Join(dir, "bindings.pyi"))

	// one module per directory works
	written, err = WriteStubs(dir, reg, HasPrefix("example.com/b/"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "bindings.pyi")}, written)
	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "class S3Service:")
}

func TestStubFileName(t *testing.T) {
	assert.Equal(t, "opendal_layers.pyi", StubFileName("example.com/opendal-layers"))
	assert.Equal(t, "bindings.pyi", StubFileName(""))
}
