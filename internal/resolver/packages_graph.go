package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// PackagesGraph asks the go command for the module graph through
// golang.org/x/tools/go/packages. It sees exactly what the build sees,
// at the cost of running `go list`.
type PackagesGraph struct {
	// Env overrides the environment of the go command, nil inherits it
	Env []string
}

// NewPackagesGraph creates a go command backed graph
func NewPackagesGraph() *PackagesGraph {
	return &PackagesGraph{}
}

// Modules lists every module providing a package in the workspace's "all" set
func (g *PackagesGraph) Modules(ctx context.Context, manifestPath string) ([]Module, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedModule,
		Dir:     filepath.Dir(manifestPath),
		Env:     g.Env,
	}

	pkgs, err := packages.Load(cfg, "all")
	if err != nil {
		return nil, fmt.Errorf("failed to load module graph: %w", err)
	}

	byPath := make(map[string]Module)
	for _, pkg := range pkgs {
		if pkg.Module == nil {
			continue
		}
		if _, ok := byPath[pkg.Module.Path]; ok {
			continue
		}
		byPath[pkg.Module.Path] = fromPackagesModule(pkg.Module)
	}

	modules := make([]Module, 0, len(byPath))
	for _, m := range byPath {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].Local != modules[j].Local {
			return modules[i].Local
		}
		return modules[i].Path < modules[j].Path
	})
	return modules, nil
}

func fromPackagesModule(pm *packages.Module) Module {
	m := Module{
		Path:    pm.Path,
		Version: pm.Version,
		Dir:     pm.Dir,
		GoMod:   pm.GoMod,
		Local:   pm.Main,
	}
	if r := pm.Replace; r != nil {
		m.Dir = r.Dir
		m.GoMod = r.GoMod
		m.Version = r.Version
		// a replacement without version is a directory on disk
		m.Local = m.Local || r.Version == ""
	}
	return m
}
