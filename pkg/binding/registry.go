package binding

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Filter selects constructors, e.g. for stub generation
type Filter func(Constructor) bool

// Registry holds constructors keyed by module and wrapper name. Two
// binding packages may both generate RetryLayer.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// DefaultRegistry is the process-wide registry generated code registers into
var DefaultRegistry = NewRegistry()

// Register adds a constructor. IDs are unique per registry.
func (r *Registry) Register(c Constructor) error {
	if c.Name == "" {
		return fmt.Errorf("register constructor: empty name")
	}
	if c.New == nil {
		return fmt.Errorf("register constructor %s: nil New func", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if _, ok := r.constructors[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateConstructor, id)
	}
	r.constructors[id] = c
	return nil
}

// MustRegister is Register for init functions; it panics on error
func (r *Registry) MustRegister(c Constructor) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor with the given ID or bare wrapper name.
// A bare name shared by several modules finds nothing; see Resolve.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	c, err := r.Resolve(name)
	return c, err == nil
}

// Resolve finds a constructor by ID (module:Name) or by bare wrapper name.
// A bare name must be unique across modules.
func (r *Registry) Resolve(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.constructors[name]; ok {
		return c, nil
	}
	if strings.Contains(name, IDSeparator) {
		return Constructor{}, fmt.Errorf("%w: %s", ErrUnknownConstructor, name)
	}

	var matches []Constructor
	for _, c := range r.constructors {
		if c.Name == name {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return Constructor{}, fmt.Errorf("%w: %s", ErrUnknownConstructor, name)
	case 1:
		return matches[0], nil
	}

	ids := make([]string, len(matches))
	for i, c := range matches {
		ids[i] = c.ID()
	}
	sort.Strings(ids)
	return Constructor{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousConstructor, name, strings.Join(ids, ", "))
}

// All returns every constructor ordered by module, then name
func (r *Registry) All() []Constructor {
	return r.Filter(nil)
}

// Filter returns the constructors accepted by keep, ordered like All.
// A nil filter keeps everything.
func (r *Registry) Filter(keep Filter) []Constructor {
	r.mu.RLock()
	result := make([]Constructor, 0, len(r.constructors))
	for _, c := range r.constructors {
		if keep == nil || keep(c) {
			result = append(result, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Module != result[j].Module {
			return result[i].Module < result[j].Module
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Kind returns the constructors of one family
func (r *Registry) Kind(kind Kind) []Constructor {
	return r.Filter(func(c Constructor) bool { return c.Kind == kind })
}

// New calls the constructor found by Resolve. Keyword arguments that no
// parameter accepts are rejected before the constructor runs.
func (r *Registry) New(name string, kwargs Kwargs) (any, error) {
	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	var unexpected []string
	for key := range kwargs {
		if _, ok := c.Param(key); !ok {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, &ArgumentError{
			Constructor: c.Name,
			Argument:    strings.Join(unexpected, ", "),
			Kind:        ErrUnexpectedArgument,
		}
	}

	value, err := c.New(kwargs)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) && argErr.Constructor == "" {
			argErr.Constructor = c.Name
		}
		return nil, err
	}
	return value, nil
}

// HasPrefix keeps constructors whose module path starts with prefix
func HasPrefix(prefix string) Filter {
	return func(c Constructor) bool {
		return strings.HasPrefix(c.Module, prefix)
	}
}

// Register adds a constructor to the default registry
func Register(c Constructor) error {
	return DefaultRegistry.Register(c)
}

// Lookup finds a constructor in the default registry
func Lookup(name string) (Constructor, bool) {
	return DefaultRegistry.Lookup(name)
}

// New calls a constructor from the default registry
func New(name string, kwargs Kwargs) (any, error) {
	return DefaultRegistry.New(name, kwargs)
}
