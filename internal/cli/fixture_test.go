package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/bindgen/internal/utils"
)

const retryLayerSource = `package retry

import "time"

// RetryLayer retries failed operations.
type RetryLayer struct{}

// WithMaxTimes sets the maximum number of attempts.
func (l RetryLayer) WithMaxTimes(maxTimes uint) RetryLayer { return l }

func (l RetryLayer) WithJitter() RetryLayer { return l }

func (l *RetryLayer) WithMinDelay(minDelay time.Duration) *RetryLayer { return l }

func (l RetryLayer) WithNotify(fn func(error)) RetryLayer { return l }
`

const fsServiceSource = `package fs

type FsService struct{}

// NewFsService creates a service rooted at root.
func NewFsService(root string) FsService { return FsService{} }

func (s FsService) WithAtomicWriteDir(atomicWriteDir string) FsService { return s }
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// workspace is a consuming module with a fake module cache holding the
// retry layer and the fs service
type workspace struct {
	root  string
	cache string
	out   *bytes.Buffer
	errs  *bytes.Buffer
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	t.Setenv("GOWORK", "off")

	base := t.TempDir()
	w := &workspace{
		root:  filepath.Join(base, "app"),
		cache: filepath.Join(base, "modcache"),
		out:   &bytes.Buffer{},
		errs:  &bytes.Buffer{},
	}
	t.Setenv("GOMODCACHE", w.cache)

	writeFile(t, filepath.Join(w.root, "go.mod"), `module example.com/app

go 1.25

require (
	github.com/apache/opendal-layer-retry v0.1.0
	github.com/apache/opendal-service-fs v0.2.0
	github.com/apache/opendal-layer-timeout v0.1.0
)
`)
	retryDir := filepath.Join(w.cache, "github.com", "apache", "opendal-layer-retry@v0.1.0")
	writeFile(t, filepath.Join(retryDir, "go.mod"), "module github.com/apache/opendal-layer-retry\n")
	writeFile(t, filepath.Join(retryDir, "retry.go"), retryLayerSource)

	// no fs.go, the service fallback file is used
	fsDir := filepath.Join(w.cache, "github.com", "apache", "opendal-service-fs@v0.2.0")
	writeFile(t, filepath.Join(fsDir, "go.mod"), "module github.com/apache/opendal-service-fs\n")
	writeFile(t, filepath.Join(fsDir, "service.go"), fsServiceSource)

	// downloaded, but holding neither candidate file
	timeoutDir := filepath.Join(w.cache, "github.com", "apache", "opendal-layer-timeout@v0.1.0")
	writeFile(t, filepath.Join(timeoutDir, "go.mod"), "module github.com/apache/opendal-layer-timeout\n")
	writeFile(t, filepath.Join(timeoutDir, "doc.go"), "package timeout\n")

	return w
}

func (w *workspace) diagnostics(level utils.DiagnosticLevel) *utils.DiagnosticSystem {
	d := utils.NewDiagnosticSystem(level)
	d.SetOutput(w.out, w.errs)
	return d
}

func (w *workspace) generator(config Config, level utils.DiagnosticLevel) *Generator {
	return NewGenerator(config, w.diagnostics(level))
}
