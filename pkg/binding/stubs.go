package binding

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// StubHeader opens every rendered stub file
const StubHeader = "# Code generated by bindgen. DO NOT EDIT."

// qualifiedType matches host type labels that need an import, e.g.
// datetime.timedelta
var qualifiedType = regexp.MustCompile(`\b([a-z_][a-z0-9_]*)\.[A-Za-z_]`)

// StubFileName returns the stub file name for a module, e.g. bindings.pyi
func StubFileName(module string) string {
	base := path.Base(module)
	if base == "." || base == "/" || base == "" {
		base = "bindings"
	}
	return strings.ReplaceAll(base, "-", "_") + ".pyi"
}

// RenderStubs renders interface descriptions for the selected constructors,
// one text per module
func RenderStubs(reg *Registry, keep Filter) map[string]string {
	byModule := make(map[string][]Constructor)
	for _, c := range reg.Filter(keep) {
		byModule[c.Module] = append(byModule[c.Module], c)
	}

	out := make(map[string]string, len(byModule))
	for module, constructors := range byModule {
		var b strings.Builder
		b.WriteString(StubHeader + "\n")
		if imports := stubImports(constructors); len(imports) > 0 {
			b.WriteString("\n")
			for _, imp := range imports {
				b.WriteString("import " + imp + "\n")
			}
		}
		for _, c := range constructors {
			b.WriteString("\n")
			writeStub(&b, c)
		}
		out[module] = b.String()
	}
	return out
}

// WriteStubs writes one stub file per module into dir and returns the
// written paths, sorted. Modules whose stub file names collide are an
// error and nothing is written; narrow keep to split them across dirs.
func WriteStubs(dir string, reg *Registry, keep Filter) ([]string, error) {
	rendered := RenderStubs(reg, keep)
	modules := make([]string, 0, len(rendered))
	for module := range rendered {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	owners := make(map[string]string, len(modules))
	for _, module := range modules {
		name := StubFileName(module)
		if other, ok := owners[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrStubFileCollision, other, module, name)
		}
		owners[name] = module
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create stub directory: %w", err)
	}

	written := make([]string, 0, len(modules))
	for _, module := range modules {
		target := filepath.Join(dir, StubFileName(module))
		if err := os.WriteFile(target, []byte(rendered[module]), 0o644); err != nil {
			return written, fmt.Errorf("write stubs for %s: %w", module, err)
		}
		written = append(written, target)
	}
	sort.Strings(written)
	return written, nil
}

func stubImports(constructors []Constructor) []string {
	seen := make(map[string]bool)
	for _, c := range constructors {
		for _, p := range c.Params {
			for _, m := range qualifiedType.FindAllStringSubmatch(p.Type, -1) {
				seen[m[1]] = true
			}
		}
	}
	imports := make([]string, 0, len(seen))
	for imp := range seen {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

func writeStub(b *strings.Builder, c Constructor) {
	fmt.Fprintf(b, "class %s:\n", c.Name)
	if c.Doc != "" {
		b.WriteString("    \"\"\"")
		for i, line := range strings.Split(c.Doc, "\n") {
			if i > 0 {
				b.WriteString("\n")
				if line != "" {
					b.WriteString("    ")
				}
			}
			b.WriteString(line)
		}
		b.WriteString("\n    \"\"\"\n\n")
	}

	args := []string{"self"}
	if len(c.Params) > 0 {
		args = append(args, "*")
	}
	for _, p := range c.Params {
		args = append(args, stubArgument(p))
	}
	fmt.Fprintf(b, "    def __init__(%s) -> None: ...\n", strings.Join(args, ", "))
}

func stubArgument(p Param) string {
	switch {
	case p.Required:
		return p.Name + ": " + p.Type
	case p.Default == "None":
		return fmt.Sprintf("%s: %s | None = None", p.Name, p.Type)
	default:
		return fmt.Sprintf("%s: %s = %s", p.Name, p.Type, p.Default)
	}
}
