package cli

import "github.com/toyz/bindgen/internal/models"

// Config holds the configuration for a bindgen invocation
type Config struct {
	// Directories is the list of directories to scan for //bindgen: directives.
	// Go-style patterns like ./... recurse.
	Directories []string

	// Prefix is the dependency name prefix, e.g. opendal for opendal-layer-retry
	Prefix string

	// Graph selects the module graph backend: modfile or packages
	Graph string

	// StubCommand runs in the workspace after every successful write
	StubCommand string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// Request asks for one generated wrapper
type Request struct {
	// Dir is the consuming package directory; the wrapper is written here
	Dir string

	Kind      models.ComponentKind
	Component string

	// Prefix overrides Config.Prefix for this request
	Prefix string

	// Output is the destination file, relative to Dir unless absolute.
	// Empty means <snake(component)>_gen.go.
	Output string

	// Graph overrides Config.Graph for this request
	Graph string

	// PackageName is the package clause of the generated file. Empty means
	// detect it from the Go files already in Dir.
	PackageName string

	// StubCommand overrides Config.StubCommand for this request
	StubCommand string
}

// Result describes one completed pipeline run
type Result struct {
	RunID      string
	Dependency string // derived dependency name, e.g. opendal-layer-retry
	Module     string // module@version the wrapper was generated from
	SourceFile string
	Path       string // written file
	Artifact   *models.GeneratedArtifact
}
