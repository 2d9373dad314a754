// Package contracts loads the external contract registry: a read-only
// mapping from a callable's name to its declared preconditions and
// postconditions. The registry is loaded once before graph construction
// begins and never mutated afterwards.
package contracts

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExternalMethod describes the contract of one externally defined callable.
// Condition text is opaque; order is preserved from the registry file.
type ExternalMethod struct {
	Name           string   `json:"name"`
	Preconditions  []string `json:"preconditions"`
	Postconditions []string `json:"postconditions"`
}

// registryFile mirrors the on-disk JSON layout.
type registryFile struct {
	ExternalMethods []ExternalMethod `json:"externalMethods"`
}

// Registry is the loaded contract registry. Lookup is by exact name match;
// overloaded or shadowed names collide, which is a property of the registry
// format rather than of this loader.
type Registry struct {
	methods []ExternalMethod
	byName  map[string]int
}

// New builds a registry from an ordered list of methods. When the same name
// appears more than once, the first entry wins.
func New(methods []ExternalMethod) *Registry {
	r := &Registry{
		methods: methods,
		byName:  make(map[string]int, len(methods)),
	}
	for i, m := range methods {
		if _, ok := r.byName[m.Name]; !ok {
			r.byName[m.Name] = i
		}
	}
	return r
}

// Empty returns a registry with no entries. Translation with an empty
// registry treats every call as a plain statement.
func Empty() *Registry {
	return New(nil)
}

// Load reads the registry from a JSON file. A missing or malformed file is
// returned as an error; callers are expected to log it and fall back to
// Empty rather than abort.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing registry file %s: %w", path, err)
	}

	return New(file.ExternalMethods), nil
}

// Lookup returns the contract registered under name, if any.
func (r *Registry) Lookup(name string) (ExternalMethod, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ExternalMethod{}, false
	}
	return r.methods[i], true
}

// Methods returns the registry entries in file order.
func (r *Registry) Methods() []ExternalMethod {
	return r.methods
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	return len(r.methods)
}
