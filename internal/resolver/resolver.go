package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"

	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/models"
)

// ManifestFile is the workspace manifest looked up under the workspace root
const ManifestFile = "go.mod"

// DefaultPrefix is the dependency name prefix used when none is configured
const DefaultPrefix = "opendal"

var (
	// ErrManifest is returned when the workspace manifest is missing or the graph cannot be read
	ErrManifest = stderrors.New("workspace manifest unavailable")

	// ErrDependencyNotFound is returned when no external module matches
	ErrDependencyNotFound = stderrors.New("dependency not found in module graph")

	// ErrModuleNotDownloaded is returned when the matched module has no source on disk
	ErrModuleNotDownloaded = stderrors.New("dependency module is not downloaded")
)

// Resolver maps a dependency name to the root directory of its source
type Resolver struct {
	graph Graph
}

// New creates a resolver over graph; nil selects the go.mod based graph
func New(graph Graph) *Resolver {
	if graph == nil {
		graph = NewModfileGraph()
	}
	return &Resolver{graph: graph}
}

// Resolve finds the first non-local module named depName in the graph of
// the workspace rooted at workspaceRoot
func (r *Resolver) Resolve(ctx context.Context, workspaceRoot, depName string) (*Module, error) {
	manifest := filepath.Join(workspaceRoot, ManifestFile)
	if _, err := os.Stat(manifest); err != nil {
		return nil, errors.WrapResolutionError(depName, workspaceRoot, fmt.Errorf("%w: %v", ErrManifest, err))
	}

	modules, err := r.graph.Modules(ctx, manifest)
	if err != nil {
		return nil, errors.WrapResolutionError(depName, workspaceRoot, fmt.Errorf("%w: %w", ErrManifest, err))
	}

	for _, m := range modules {
		if m.Local || !Matches(m.Path, depName) {
			continue
		}
		if m.Dir == "" {
			return nil, errors.WrapResolutionError(depName, workspaceRoot,
				fmt.Errorf("%w: %s@%s", ErrModuleNotDownloaded, m.Path, m.Version))
		}
		if info, err := os.Stat(m.Dir); err != nil || !info.IsDir() {
			return nil, errors.WrapResolutionError(depName, workspaceRoot,
				fmt.Errorf("%w: %s", ErrModuleNotDownloaded, m.Dir))
		}
		found := m
		return &found, nil
	}

	return nil, errors.WrapResolutionError(depName, workspaceRoot, ErrDependencyNotFound)
}

// ModuleName returns the last path element of a module path without its
// major version suffix, e.g. github.com/a/opendal-layer-retry/v2 -> opendal-layer-retry
func ModuleName(modulePath string) string {
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok {
		prefix = modulePath
	}
	return path.Base(prefix)
}

// Matches reports whether a module path answers to depName, either by its
// full path or by its name
func Matches(modulePath, depName string) bool {
	return modulePath == depName || ModuleName(modulePath) == depName
}

// DependencyName derives the conventional module name of a component,
// e.g. (opendal, layer, retry) -> opendal-layer-retry
func DependencyName(prefix string, kind models.ComponentKind, component string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return strings.ReplaceAll(prefix+"-"+kind.String()+"-"+component, "_", "-")
}
