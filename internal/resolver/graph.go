// Package resolver locates the on-disk source of a dependency module through
// the workspace's module graph.
package resolver

import "context"

// Module is one node of the module graph
type Module struct {
	Path    string // module path, e.g. github.com/apache/opendal-layer-retry
	Version string // selected version, empty for local members
	Dir     string // directory holding the module source, empty when not on disk
	GoMod   string // path to the module's go.mod, empty when unknown
	Local   bool   // workspace member or filesystem replacement, never matched
}

// Graph enumerates the modules reachable from a workspace manifest
type Graph interface {
	Modules(ctx context.Context, manifestPath string) ([]Module, error)
}
