package decl

// Index is the name-keyed view over a declaration set.
//
// The ordered slices keep declaration order; lookups resolve duplicate names
// to the last declaration.
type Index struct {
	Structs []Struct
	Aliases []Alias
	Consts  []Const

	structs map[string]int
	aliases map[string]int
	consts  map[string]int
}

// NewIndex flattens set into an Index. The set is not copied deeply and must
// not be mutated afterwards.
func NewIndex(set *Set) *Index {
	ix := &Index{
		structs: map[string]int{},
		aliases: map[string]int{},
		consts:  map[string]int{},
	}
	if set == nil {
		return ix
	}

	ix.Structs = set.Structs
	ix.Aliases = set.Aliases
	ix.Consts = set.Consts
	for i, s := range set.Structs {
		ix.structs[s.Name] = i
	}
	for i, a := range set.Aliases {
		ix.aliases[a.Name] = i
	}
	for i, c := range set.Consts {
		ix.consts[c.Name] = i
	}
	return ix
}

// Struct looks up a struct by name.
func (ix *Index) Struct(name string) (Struct, bool) {
	i, ok := ix.structs[name]
	if !ok {
		return Struct{}, false
	}
	return ix.Structs[i], true
}

// Alias looks up a type alias by name.
func (ix *Index) Alias(name string) (Alias, bool) {
	i, ok := ix.aliases[name]
	if !ok {
		return Alias{}, false
	}
	return ix.Aliases[i], true
}

// Const looks up a constant by name.
func (ix *Index) Const(name string) (Const, bool) {
	i, ok := ix.consts[name]
	if !ok {
		return Const{}, false
	}
	return ix.Consts[i], true
}
