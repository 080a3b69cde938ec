package generator

import (
	"go/ast"
	"go/importer"
	goparser "go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/typemap"
)

const bindingImportPath = "github.com/toyz/bindgen/pkg/binding"

// sourceImporter type-checks in-memory packages from source and falls
// back to the standard library for everything else.
type sourceImporter struct {
	fset    *token.FileSet
	std     types.Importer
	sources map[string][]*ast.File
	checked map[string]*types.Package
}

func newSourceImporter(t *testing.T, fset *token.FileSet) *sourceImporter {
	t.Helper()
	imp := &sourceImporter{
		fset:    fset,
		std:     importer.ForCompiler(fset, "source", nil),
		sources: make(map[string][]*ast.File),
		checked: make(map[string]*types.Package),
	}

	paths, err := filepath.Glob(filepath.Join("..", "..", "pkg", "binding", "*.go"))
	require.NoError(t, err)
	for _, path := range paths {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		f, err := goparser.ParseFile(fset, path, nil, goparser.SkipObjectResolution)
		require.NoError(t, err)
		imp.sources[bindingImportPath] = append(imp.sources[bindingImportPath], f)
	}
	require.NotEmpty(t, imp.sources[bindingImportPath])
	return imp
}

func (s *sourceImporter) add(t *testing.T, importPath, filename, src string) {
	t.Helper()
	f, err := goparser.ParseFile(s.fset, filename, src, goparser.SkipObjectResolution)
	require.NoError(t, err)
	s.sources[importPath] = append(s.sources[importPath], f)
}

func (s *sourceImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := s.checked[path]; ok {
		return pkg, nil
	}
	files, ok := s.sources[path]
	if !ok {
		return s.std.Import(path)
	}
	conf := types.Config{Importer: s}
	pkg, err := conf.Check(path, s.fset, files, nil)
	if err != nil {
		return nil, err
	}
	s.checked[path] = pkg
	return pkg, nil
}

func TestAssembler_GeneratedCodeTypeChecks(t *testing.T) {
	tests := []struct {
		name      string
		variant   models.Variant
		table     *typemap.Table
		component string
		src       string
	}{
		{
			name:      "layer with pointer receiver and duration",
			variant:   models.LayerVariant(),
			table:     typemap.Layer(),
			component: "retry",
			src:       retrySource,
		},
		{
			name:      "service factory with setters",
			variant:   models.ServiceVariant(),
			table:     typemap.Service(),
			component: "fs",
			src: `package fs

type Clock interface{ Now() int64 }

type FsService struct{}

func NewFsService(root string) FsService { return FsService{} }

func (s FsService) WithVerbose() FsService { return s }

func (s FsService) WithAtomic(enabled bool) FsService { return s }

func (s FsService) WithClock(c Clock) FsService { return s }
`,
		},
		{
			name:      "service with parsed duration",
			variant:   models.ServiceVariant(),
			table:     typemap.Service(),
			component: "s3",
			src: `package s3

import "time"

type S3Service struct{}

func (s S3Service) WithTimeout(timeout time.Duration) S3Service { return s }

func (s S3Service) WithRegion(region string) S3Service { return s }
`,
		},
		{
			name:      "service with unmappable factory",
			variant:   models.ServiceVariant(),
			table:     typemap.Service(),
			component: "ghac",
			src: `package ghac

type Config struct{ Version string }

type GhacService struct{}

func NewGhacService(cfg Config) GhacService { return GhacService{} }

func (s GhacService) WithVersion(version string) GhacService { return s }
`,
		},
		{
			name:      "identifiers shadowing generated names",
			variant:   models.LayerVariant(),
			table:     typemap.Layer(),
			component: "kv",
			src: `package binding

type KvLayer struct{}

func (k KvLayer) WithType() KvLayer { return k }
func (k KvLayer) WithL(l int) KvLayer { return k }
func (k KvLayer) WithErr(err bool) KvLayer { return k }
func (k KvLayer) WithKwargs(kwargs string) KvLayer { return k }
func (k KvLayer) WithRatio(ratio float32) KvLayer { return k }
`,
		},
		{
			name:      "zero method layer",
			variant:   models.LayerVariant(),
			table:     typemap.Layer(),
			component: "logging",
			src:       "package logging\n\ntype LoggingLayer struct{}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importPath := "example.com/opendal-" + tt.variant.Kind.String() + "-" + tt.component
			target := models.Target{
				PackageName: "bindings",
				ImportPath:  importPath,
				ModulePath:  "example.com/app/bindings",
			}

			desc := extract(t, tt.variant, tt.component, tt.src)
			artifact, err := NewAssembler().Assemble(desc, tt.table, target)
			require.NoError(t, err)

			fset := token.NewFileSet()
			imp := newSourceImporter(t, fset)
			imp.add(t, importPath, tt.component+".go", tt.src)

			generated, err := goparser.ParseFile(fset, tt.component+"_gen.go", artifact.Content, goparser.SkipObjectResolution)
			require.NoError(t, err)

			conf := types.Config{Importer: imp}
			_, err = conf.Check(target.ModulePath, fset, []*ast.File{generated}, nil)
			require.NoError(t, err, string(artifact.Content))
		})
	}
}
