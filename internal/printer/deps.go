package printer

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Deps is the set of named types an expression calls into.
type Deps map[string]struct{}

// Add records one dependency.
func (d Deps) Add(name string) {
	d[name] = struct{}{}
}

// Merge adds every dependency of other.
func (d Deps) Merge(other Deps) {
	for name := range other {
		d[name] = struct{}{}
	}
}

// Has reports whether name is recorded.
func (d Deps) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Sorted returns the dependencies in ascending order.
func (d Deps) Sorted() []string {
	names := maps.Keys(d)
	sort.Strings(names)
	return names
}
