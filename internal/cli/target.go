package cli

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/resolver"
	"github.com/toyz/bindgen/internal/utils"
)

// TargetBuilder works out where a wrapper lives and how it refers to
// the wrapped package
type TargetBuilder struct {
	gomod *utils.GoModParser
}

// NewTargetBuilder creates a new target builder
func NewTargetBuilder() *TargetBuilder {
	return &TargetBuilder{gomod: utils.NewGoModParser()}
}

// Workspace returns the root directory and module path of the module containing dir
func (b *TargetBuilder) Workspace(dir string) (root, modulePath string, err error) {
	goModPath, err := b.gomod.FindGoModFile(dir)
	if err != nil {
		return "", "", err
	}
	modulePath, err = b.gomod.ParseModuleName(goModPath)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(goModPath), modulePath, nil
}

// Build assembles the target for a wrapper written into dir
func (b *TargetBuilder) Build(dir, packageName, workspaceRoot, modulePath string, dep *resolver.Module, sourceFile string) (models.Target, error) {
	consumer, err := b.gomod.PackageImportPath(modulePath, workspaceRoot, dir)
	if err != nil {
		return models.Target{}, err
	}
	wrapped, err := b.gomod.PackageImportPath(dep.Path, dep.Dir, filepath.Dir(sourceFile))
	if err != nil {
		return models.Target{}, err
	}

	if packageName == "" {
		packageName = DetectPackageName(dir)
	}

	source := dep.Path
	if dep.Version != "" {
		source += "@" + dep.Version
	}

	return models.Target{
		PackageName:  packageName,
		ImportPath:   wrapped,
		ModulePath:   consumer,
		SourceModule: source,
	}, nil
}

// DetectPackageName reads the package clause of the first hand-written Go
// file in dir, falling back to a name derived from the directory
func DetectPackageName(dir string) string {
	entries, err := os.ReadDir(dir)
	if err == nil {
		filter := utils.DefaultGoFileFilter()
		var names []string
		for _, e := range entries {
			if filter(filepath.Join(dir, e.Name()), e) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		fset := token.NewFileSet()
		for _, name := range names {
			file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
			if err == nil && !strings.HasSuffix(file.Name.Name, "_test") {
				return file.Name.Name
			}
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	name := strings.ReplaceAll(utils.SnakeCase(filepath.Base(abs)), "_", "")
	if name == "" || !token.IsIdentifier(name) {
		return "bindings"
	}
	return name
}
