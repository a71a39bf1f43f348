package entity

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/enumlike"
	"github.com/seitarof/gen-cstruct/internal/errors"
	"github.com/seitarof/gen-cstruct/internal/printer"
)

//go:embed templates/*.ts.tmpl
var templateFS embed.FS

// Entity is one generated generator function.
type Entity struct {
	Name string
	Code string
	Deps []string
}

// Entities maps an entity name to the single entity that owns it.
type Entities map[string]Entity

// Names returns the entity names in ascending order.
func (es Entities) Names() []string {
	names := make([]string, 0, len(es))
	for name := range es {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ignored holds helper types the C frontend synthesizes for bitfields and
// anonymous unions. They are never emitted and never reported as missing.
var ignored = map[string]struct{}{
	"__BindgenBitfieldUnit":  {},
	"__BindgenUnionField":    {},
	"__IncompleteArrayField": {},
}

// Ignored reports whether name belongs to the ignore set.
func Ignored(name string) bool {
	_, ok := ignored[name]
	return ok
}

// Builder turns indexed declarations into entities.
type Builder struct {
	tmpl   *template.Template
	logger *zap.Logger
}

type structData struct {
	Namespace string
	Name      string
	Fields    []fieldData
}

type fieldData struct {
	Name string
	Expr string
}

type aliasData struct {
	Name string
	Expr string
}

type enumData struct {
	Namespace string
	Name      string
	Expr      string
	Variants  []enumlike.Variant
}

// NewBuilder creates an entity builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"quote": quoteString,
		"key":   objectKey,
	}).ParseFS(templateFS, "templates/*.ts.tmpl"))
	return &Builder{tmpl: tmpl, logger: logger}
}

// Build emits one entity per struct, alias and enum group.
//
// Structs are built first, then aliases not claimed by a group, then groups.
// A later entity replaces an earlier one with the same name, so an enum group
// always wins over the alias it was inferred from.
func (b *Builder) Build(ix *decl.Index, groups map[string]*enumlike.Group) (Entities, error) {
	out := Entities{}

	for _, s := range ix.Structs {
		if Ignored(s.Name) {
			b.logger.Debug("skipping ignored struct", zap.String("name", s.Name))
			continue
		}
		e, err := b.buildStruct(s)
		if err != nil {
			return nil, err
		}
		b.put(out, e, "struct")
	}

	for _, a := range ix.Aliases {
		if _, claimed := groups[a.Name]; claimed {
			continue
		}
		e, err := b.buildAlias(a)
		if err != nil {
			return nil, err
		}
		b.put(out, e, "alias")
	}

	owners := make([]string, 0, len(groups))
	for owner := range groups {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	for _, owner := range owners {
		e, err := b.buildEnum(groups[owner])
		if err != nil {
			return nil, err
		}
		b.put(out, e, "enum")
	}

	return out, nil
}

func (b *Builder) put(out Entities, e Entity, kind string) {
	if _, exists := out[e.Name]; exists {
		b.logger.Debug("entity replaced", zap.String("name", e.Name), zap.String("by", kind))
	}
	out[e.Name] = e
}

func (b *Builder) buildStruct(s decl.Struct) (Entity, error) {
	data := structData{Namespace: printer.Namespace, Name: s.Name}
	deps := printer.Deps{}

	if s.Unnamed {
		b.logger.Debug("struct has no named fields", zap.String("name", s.Name))
	} else {
		for _, f := range s.Fields {
			expr, fieldDeps, err := printer.Render(f.Type)
			if err != nil {
				return Entity{}, errors.WithPath(err, s.Name, f.Name)
			}
			deps.Merge(fieldDeps)
			data.Fields = append(data.Fields, fieldData{Name: f.Name, Expr: expr})
		}
	}

	code, err := b.execute("struct.ts.tmpl", data)
	if err != nil {
		return Entity{}, err
	}
	return Entity{Name: s.Name, Code: code, Deps: deps.Sorted()}, nil
}

func (b *Builder) buildAlias(a decl.Alias) (Entity, error) {
	expr, deps, err := printer.Render(a.Type)
	if err != nil {
		return Entity{}, errors.WithPath(err, a.Name)
	}

	code, err := b.execute("alias.ts.tmpl", aliasData{Name: a.Name, Expr: expr})
	if err != nil {
		return Entity{}, err
	}
	return Entity{Name: a.Name, Code: code, Deps: deps.Sorted()}, nil
}

func (b *Builder) buildEnum(g *enumlike.Group) (Entity, error) {
	expr, deps, err := printer.Render(g.Underlying)
	if err != nil {
		return Entity{}, errors.WithPath(err, g.Owner)
	}

	code, err := b.execute("enum.ts.tmpl", enumData{
		Namespace: printer.Namespace,
		Name:      g.Owner,
		Expr:      expr,
		Variants:  g.Sorted(),
	})
	if err != nil {
		return Entity{}, err
	}
	return Entity{Name: g.Owner, Code: code, Deps: deps.Sorted()}, nil
}

func (b *Builder) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	return buf.String(), nil
}

// quoteString renders s as a single-quoted JavaScript string literal.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// objectKey renders an object literal key, quoting non-identifiers.
func objectKey(s string) string {
	if isIdentifier(s) {
		return s
	}
	return quoteString(s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
