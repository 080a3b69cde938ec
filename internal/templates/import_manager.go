package templates

import (
	"fmt"
	"sort"
	"strings"
)

// ImportManager handles import generation and deduplication
type ImportManager struct {
	standardImports map[string]bool
	packageImports  map[string]string // path -> alias, alias may be empty
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		standardImports: make(map[string]bool),
		packageImports:  make(map[string]string),
	}
}

// AddImport adds an import, routing standard library paths to their own group
func (im *ImportManager) AddImport(importPath string) {
	if importPath == "" {
		return
	}
	if isStandardLibrary(importPath) {
		im.standardImports[importPath] = true
		return
	}
	if _, exists := im.packageImports[importPath]; !exists {
		im.packageImports[importPath] = ""
	}
}

// AddPackageImport adds a package import with an explicit alias
func (im *ImportManager) AddPackageImport(alias, path string) {
	if path != "" {
		im.packageImports[path] = alias
	}
}

// GenerateImports generates the import section: standard library first,
// then everything else, each group sorted by path.
func (im *ImportManager) GenerateImports() string {
	std := sortedKeys(im.standardImports)

	var pkgs []string
	for path := range im.packageImports {
		pkgs = append(pkgs, path)
	}
	sort.Strings(pkgs)

	total := len(std) + len(pkgs)
	if total == 0 {
		return ""
	}
	if total == 1 {
		if len(std) == 1 {
			return fmt.Sprintf("import %q\n", std[0])
		}
		return "import " + im.spec(pkgs[0]) + "\n"
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, path := range std {
		result.WriteString(fmt.Sprintf("\t%q\n", path))
	}
	if len(std) > 0 && len(pkgs) > 0 {
		result.WriteString("\n")
	}
	for _, path := range pkgs {
		result.WriteString("\t" + im.spec(path) + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}

// Paths returns every import path, sorted
func (im *ImportManager) Paths() []string {
	paths := sortedKeys(im.standardImports)
	for path := range im.packageImports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (im *ImportManager) spec(path string) string {
	if alias := im.packageImports[path]; alias != "" {
		return fmt.Sprintf("%s %q", alias, path)
	}
	return fmt.Sprintf("%q", path)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isStandardLibrary reports whether the first path element has no dot
func isStandardLibrary(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
