package annotations

import (
	"strings"

	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/models"
)

// DirectivePrefix starts every bindgen directive comment
const DirectivePrefix = "//bindgen:"

// Directive option names
const (
	OptionPrefix = "prefix"
	OptionOut    = "out"
	OptionGraph  = "graph"
)

// Graph option values
const (
	GraphModfile  = "modfile"
	GraphPackages = "packages"
)

// Directive requests one generated wrapper, e.g.
//
//	//bindgen:layer retry
//	//bindgen:service s3 -prefix=opendal -out=s3_gen.go
type Directive struct {
	Kind      models.ComponentKind
	Component string
	Prefix    string // dependency name prefix, empty for the default
	Output    string // output file name, empty for <component>_gen.go
	Graph     string // module graph backend, empty for the default
	Package   string // package clause of the declaring file
	Location  errors.SourceLocation
	Raw       string
}

// IsDirective reports whether a comment line is a bindgen directive
func IsDirective(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), DirectivePrefix)
}

// Key identifies what a directive generates, for duplicate detection
func (d Directive) Key() string {
	return d.Kind.String() + ":" + d.Component
}
