package manifest

import (
	"encoding/json"
	"sort"
)

// File is an in-memory package.json.
type File struct {
	fields       []field
	Dependencies *Dependencies
}

type field struct {
	key   string
	value []byte // raw JSON; unused for the dependencies key
}

const dependenciesKey = "dependencies"

// Name returns the package name, or empty string if none is declared.
func (f *File) Name() string {
	for _, fl := range f.fields {
		if fl.key == "name" {
			var name string
			if err := json.Unmarshal(fl.value, &name); err == nil {
				return name
			}
		}
	}
	return ""
}

// Dependencies is an ordered mapping of package name to specifier.
type Dependencies struct {
	keys   []string
	values map[string]string
}

// NewDependencies returns an empty mapping.
func NewDependencies() *Dependencies {
	return &Dependencies{values: make(map[string]string)}
}

// Get returns the specifier for name.
func (d *Dependencies) Get(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Set adds or replaces the specifier for name. New keys are appended.
func (d *Dependencies) Set(name, spec string) {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = spec
}

// Keys returns the dependency names in their current order.
func (d *Dependencies) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of dependencies.
func (d *Dependencies) Len() int { return len(d.keys) }

// Sort orders the keys lexicographically.
func (d *Dependencies) Sort() { sort.Strings(d.keys) }
