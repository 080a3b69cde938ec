package resolver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

func TestFromPackagesModule(t *testing.T) {
	t.Run("main module is local", func(t *testing.T) {
		m := fromPackagesModule(&packages.Module{Path: "example.com/app", Dir: "/src/app", Main: true})
		assert.True(t, m.Local)
	})

	t.Run("cached dependency", func(t *testing.T) {
		m := fromPackagesModule(&packages.Module{
			Path:    "github.com/apache/opendal-layer-retry",
			Version: "v1.2.0",
			Dir:     "/mod/github.com/apache/opendal-layer-retry@v1.2.0",
			GoMod:   "/mod/cache/download/github.com/apache/opendal-layer-retry/@v/v1.2.0.mod",
		})
		assert.False(t, m.Local)
		assert.Equal(t, "v1.2.0", m.Version)
	})

	t.Run("directory replacement is local", func(t *testing.T) {
		m := fromPackagesModule(&packages.Module{
			Path:    "github.com/apache/opendal-layer-retry",
			Version: "v1.2.0",
			Replace: &packages.Module{Path: "../retry", Dir: "/src/retry", GoMod: "/src/retry/go.mod"},
		})
		assert.True(t, m.Local)
		assert.Equal(t, "/src/retry", m.Dir)
	})

	t.Run("module replacement stays external", func(t *testing.T) {
		m := fromPackagesModule(&packages.Module{
			Path:    "github.com/apache/opendal-layer-retry",
			Version: "v1.2.0",
			Replace: &packages.Module{Path: "github.com/fork/opendal-layer-retry", Version: "v1.2.1", Dir: "/mod/fork@v1.2.1"},
		})
		assert.False(t, m.Local)
		assert.Equal(t, "v1.2.1", m.Version)
		assert.Equal(t, "/mod/fork@v1.2.1", m.Dir)
	})
}

func TestPackagesGraph_Implements(t *testing.T) {
	var _ Graph = NewPackagesGraph()
	var _ Graph = NewModfileGraph()
}

func TestPackagesGraph_LoadsLocalModule(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	dir := t.TempDir()
	manifest := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(manifest, []byte("module example.com/app/bindings\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bindings.go"), []byte("package bindings\n\nimport _ \"strings\"\n"), 0o644))

	modules, err := NewPackagesGraph().Modules(context.Background(), manifest)
	require.NoError(t, err)
	require.NotEmpty(t, modules)

	local := modules[0]
	assert.Equal(t, "example.com/app/bindings", local.Path)
	assert.True(t, local.Local)
	want, err := filepath.EvalSymlinks(manifest)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(local.GoMod)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for _, m := range modules[1:] {
		assert.False(t, m.Local, m.Path)
	}
}

func TestPackagesGraph_MissingManifestDirectory(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	_, err := NewPackagesGraph().Modules(context.Background(), filepath.Join(t.TempDir(), "missing", "go.mod"))
	assert.Error(t, err)
}
