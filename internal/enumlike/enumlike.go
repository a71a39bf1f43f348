package enumlike

import (
	"sort"
	"strings"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
	"github.com/seitarof/gen-cstruct/internal/printer"
)

// Separator sits between the owner type name and the variant name.
const Separator = "_"

// Group is an inferred enumeration: the constants named after a type alias.
type Group struct {
	Owner      string
	Underlying decl.TypeRef
	Variants   map[string]string
}

// Variant is one rendered enum member.
type Variant struct {
	Name  string
	Value string
}

// Sorted returns the variants ordered by rendered value (plain string
// comparison, so "-1" < "0" < "10" < "2"), ties broken by name.
func (g *Group) Sorted() []Variant {
	out := make([]Variant, 0, len(g.Variants))
	for name, value := range g.Variants {
		out = append(out, Variant{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == out[j].Value {
			return out[i].Name < out[j].Name
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Synthesize groups the constants of ix by owner alias.
//
// A constant joins the group of alias T when its declared type is the
// unqualified name T and its own name is T_<variant> with a non-empty
// variant. Aliases without qualifying constants produce no group.
func Synthesize(ix *decl.Index) (map[string]*Group, error) {
	groups := map[string]*Group{}
	for _, c := range ix.Consts {
		owner, variant, ok := match(ix, c)
		if !ok {
			continue
		}

		value, err := printer.RenderExpr(c.Value)
		if err != nil {
			return nil, errors.WithPath(err, c.Name)
		}

		alias, _ := ix.Alias(owner)
		g, exists := groups[owner]
		if !exists {
			g = &Group{Owner: owner, Variants: map[string]string{}}
			groups[owner] = g
		}
		g.Underlying = alias.Type
		g.Variants[variant] = value
	}
	return groups, nil
}

func match(ix *decl.Index, c decl.Const) (owner string, variant string, ok bool) {
	named, isNamed := c.Type.(decl.Named)
	if !isNamed {
		return "", "", false
	}
	owner, ok = named.Simple()
	if !ok {
		return "", "", false
	}
	if _, hasAlias := ix.Alias(owner); !hasAlias {
		return "", "", false
	}

	variant, found := strings.CutPrefix(c.Name, owner+Separator)
	if !found || variant == "" {
		return "", "", false
	}
	return owner, variant, true
}
