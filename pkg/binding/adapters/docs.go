// Package adapters mounts read-only documentation endpoints for a binding
// registry on echo, gin or fiber:
//
//	GET /bindings          every constructor, optionally ?kind=layer|service
//	GET /bindings/:name    one constructor, ?module=<import path> when the name is shared
//	GET /stubs             rendered stubs, optionally ?prefix=<module prefix>
package adapters

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/toyz/bindgen/pkg/binding"
)

// Route paths shared by every adapter
const (
	BindingsPath = "/bindings"
	BindingPath  = "/bindings/:name"
	StubsPath    = "/stubs"
)

// ErrorBody is returned with non-2xx responses
type ErrorBody struct {
	Error string `json:"error"`
}

// docs answers the framework-independent part of every endpoint
type docs struct {
	registry *binding.Registry
	filter   binding.Filter
}

func newDocs(registry *binding.Registry, filter binding.Filter) docs {
	if registry == nil {
		registry = binding.DefaultRegistry
	}
	return docs{registry: registry, filter: filter}
}

func (d docs) visible(c binding.Constructor) bool {
	return d.filter == nil || d.filter(c)
}

func (d docs) list(kind string) []binding.Constructor {
	return d.registry.Filter(func(c binding.Constructor) bool {
		return d.visible(c) && (kind == "" || string(c.Kind) == kind)
	})
}

// get returns the constructor or the status and body to answer with
func (d docs) get(name, module string) (binding.Constructor, int, ErrorBody) {
	id := name
	if module != "" {
		id = binding.Constructor{Module: module, Name: name}.ID()
	}
	c, err := d.registry.Resolve(id)
	if errors.Is(err, binding.ErrAmbiguousConstructor) {
		// hidden modules do not make a visible name ambiguous
		candidates := d.registry.Filter(func(c binding.Constructor) bool {
			return c.Name == name && d.visible(c)
		})
		if len(candidates) > 1 {
			return binding.Constructor{}, http.StatusConflict, ErrorBody{Error: err.Error()}
		}
		if len(candidates) == 1 {
			c, err = candidates[0], nil
		}
	}
	if err != nil || !d.visible(c) {
		return binding.Constructor{}, http.StatusNotFound, notFound(name)
	}
	return c, http.StatusOK, ErrorBody{}
}

func (d docs) stubs(prefix string) string {
	keep := d.filter
	if prefix != "" {
		byPrefix := binding.HasPrefix(prefix)
		keep = func(c binding.Constructor) bool { return d.visible(c) && byPrefix(c) }
	}

	rendered := binding.RenderStubs(d.registry, keep)
	modules := make([]string, 0, len(rendered))
	for module := range rendered {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	parts := make([]string, len(modules))
	for i, module := range modules {
		parts[i] = rendered[module]
	}
	return strings.Join(parts, "\n")
}

func notFound(name string) ErrorBody {
	return ErrorBody{Error: "binding not found: " + name}
}
