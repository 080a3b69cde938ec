// Package binding is the runtime side of generated wrappers. Generated files
// register their constructors here from init(); an embedding host looks them
// up by name and calls them with keyword arguments.
package binding

// Kind identifies which family a constructor belongs to
type Kind string

const (
	KindLayer   Kind = "layer"
	KindService Kind = "service"
)

// Kwargs holds host keyword arguments keyed by their host-side name
type Kwargs map[string]any

// Param describes one host-side constructor argument
type Param struct {
	// Name is the snake_case argument name, e.g. max_times
	Name string `json:"name"`

	// Type is the host-side display label, e.g. int or datetime.timedelta
	Type string `json:"type"`

	// Default is the host-side default expression, empty when Required
	Default string `json:"default,omitempty"`

	// Required marks the factory argument, which has no default
	Required bool `json:"required,omitempty"`
}

// NewFunc builds a wrapper value from host keyword arguments
type NewFunc func(kwargs Kwargs) (any, error)

// Constructor is one registered wrapper constructor
type Constructor struct {
	// Module is the import path of the package holding the generated wrapper
	Module string `json:"module"`

	// Name is the wrapper type name, e.g. RetryLayer
	Name string `json:"name"`

	Kind Kind `json:"kind"`

	// Doc is the host-side docstring
	Doc string `json:"doc"`

	Params []Param `json:"params"`

	// New adapts host keyword arguments to the typed Go constructor
	New NewFunc `json:"-"`
}

// IDSeparator joins module and name in a constructor ID. It cannot occur
// in a module path.
const IDSeparator = ":"

// ID identifies the constructor across modules, e.g.
// example.com/app/bindings:RetryLayer
func (c Constructor) ID() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + IDSeparator + c.Name
}

// Param returns the parameter with the given host-side name
func (c Constructor) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
