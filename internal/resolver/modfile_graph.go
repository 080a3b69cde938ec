package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/toyz/bindgen/internal/utils"
)

// ModfileGraph reads go.mod and go.work directly and locates required
// modules in the module cache. It never runs the go command.
type ModfileGraph struct {
	parser   *utils.GoModParser
	modCache string
}

// NewModfileGraph creates a graph using the environment's module cache
func NewModfileGraph() *ModfileGraph {
	return &ModfileGraph{parser: utils.NewGoModParser()}
}

// WithModCache overrides the module cache directory
func (g *ModfileGraph) WithModCache(dir string) *ModfileGraph {
	g.modCache = dir
	return g
}

// ModCache returns GOMODCACHE, falling back to GOPATH/pkg/mod and then
// $HOME/go/pkg/mod
func ModCache() string {
	if dir := os.Getenv("GOMODCACHE"); dir != "" {
		return dir
	}
	if gopath := filepath.SplitList(os.Getenv("GOPATH")); len(gopath) > 0 && gopath[0] != "" {
		return filepath.Join(gopath[0], "pkg", "mod")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "go", "pkg", "mod")
	}
	return ""
}

// Modules lists the main module, workspace members and every requirement
func (g *ModfileGraph) Modules(ctx context.Context, manifestPath string) ([]Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mainFile, err := g.parser.Parse(manifestPath)
	if err != nil {
		return nil, err
	}
	mainDir := filepath.Dir(manifestPath)

	cache := g.modCache
	if cache == "" {
		cache = ModCache()
	}

	b := &graphBuilder{
		cache:    cache,
		seen:     make(map[string]bool),
		replaces: make(map[string]*modfile.Replace),
	}
	b.addLocal(mainFile.Module.Mod.Path, mainDir, manifestPath)

	files := []*modfile.File{mainFile}
	dirs := []string{mainDir}

	if workPath, err := g.parser.FindGoWorkFile(mainDir); err == nil {
		members, err := g.workspaceMembers(workPath, b)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			files = append(files, m.file)
			dirs = append(dirs, m.dir)
		}
	}

	for i, f := range files {
		for _, rep := range f.Replace {
			b.addReplace(rep, dirs[i])
		}
	}
	for _, f := range files {
		for _, req := range f.Require {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			b.addRequire(req.Mod)
		}
	}

	return b.modules, nil
}

type member struct {
	file *modfile.File
	dir  string
}

func (g *ModfileGraph) workspaceMembers(workPath string, b *graphBuilder) ([]member, error) {
	content, err := os.ReadFile(workPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.work file: %w", err)
	}
	work, err := modfile.ParseWork(workPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.work file: %w", err)
	}

	workDir := filepath.Dir(workPath)
	for _, rep := range work.Replace {
		b.addReplace(rep, workDir)
	}

	var members []member
	for _, use := range work.Use {
		dir := use.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(workDir, dir)
		}
		goMod := filepath.Join(dir, "go.mod")
		file, err := g.parser.Parse(goMod)
		if err != nil {
			return nil, err
		}
		b.addLocal(file.Module.Mod.Path, dir, goMod)
		members = append(members, member{file: file, dir: dir})
	}
	return members, nil
}

type graphBuilder struct {
	cache    string
	modules  []Module
	seen     map[string]bool
	replaces map[string]*modfile.Replace
}

func (b *graphBuilder) addLocal(path, dir, goMod string) {
	if b.seen[path] {
		return
	}
	b.seen[path] = true
	b.modules = append(b.modules, Module{Path: path, Dir: dir, GoMod: goMod, Local: true})
}

// addReplace records a replacement; filesystem targets are resolved
// relative to the file declaring them
func (b *graphBuilder) addReplace(rep *modfile.Replace, baseDir string) {
	r := *rep
	if r.New.Version == "" && !filepath.IsAbs(r.New.Path) {
		r.New.Path = filepath.Join(baseDir, r.New.Path)
	}
	key := r.Old.Path
	if r.Old.Version != "" {
		key += "@" + r.Old.Version
	}
	if _, exists := b.replaces[key]; !exists {
		b.replaces[key] = &r
	}
}

func (b *graphBuilder) replacement(mod module.Version) (*modfile.Replace, bool) {
	if r, ok := b.replaces[mod.Path+"@"+mod.Version]; ok {
		return r, true
	}
	r, ok := b.replaces[mod.Path]
	return r, ok
}

func (b *graphBuilder) addRequire(mod module.Version) {
	if b.seen[mod.Path] {
		return
	}
	b.seen[mod.Path] = true

	if rep, ok := b.replacement(mod); ok {
		if rep.New.Version == "" {
			b.modules = append(b.modules, Module{
				Path:  mod.Path,
				Dir:   rep.New.Path,
				GoMod: filepath.Join(rep.New.Path, "go.mod"),
				Local: true,
			})
			return
		}
		m := b.cached(rep.New)
		m.Path = mod.Path
		b.modules = append(b.modules, m)
		return
	}

	b.modules = append(b.modules, b.cached(mod))
}

// cached locates a module version in the module cache
func (b *graphBuilder) cached(mod module.Version) Module {
	m := Module{Path: mod.Path, Version: mod.Version}
	if b.cache == "" {
		return m
	}

	escPath, err := module.EscapePath(mod.Path)
	if err != nil {
		return m
	}
	escVersion, err := module.EscapeVersion(mod.Version)
	if err != nil {
		return m
	}

	dir := filepath.Join(b.cache, filepath.FromSlash(escPath)+"@"+escVersion)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		m.Dir = dir
		m.GoMod = filepath.Join(dir, "go.mod")
	}
	return m
}
