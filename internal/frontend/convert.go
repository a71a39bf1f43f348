package frontend

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// converter maps Go declaration syntax onto the declaration model.
type converter struct {
	set    *decl.Set
	logger *zap.Logger
}

func newConverter(logger *zap.Logger) *converter {
	return &converter{set: &decl.Set{}, logger: logger}
}

func (c *converter) addFile(file *ast.File) error {
	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				if err := c.addTypeSpec(spec.(*ast.TypeSpec)); err != nil {
					return err
				}
			}
		case token.CONST:
			if err := c.addConstDecl(gen); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) addTypeSpec(spec *ast.TypeSpec) error {
	name := spec.Name.Name
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return errors.UnsupportedType(errors.PhaseIndex, []string{name}, "with type parameters")
	}

	if st, ok := spec.Type.(*ast.StructType); ok {
		s, err := c.convertStruct(name, st)
		if err != nil {
			return err
		}
		c.set.Structs = append(c.set.Structs, s)
		return nil
	}

	ref, err := convertType(spec.Type)
	if err != nil {
		return errors.WithPath(err, name)
	}
	c.set.Aliases = append(c.set.Aliases, decl.Alias{Name: name, Type: ref})
	return nil
}

func (c *converter) convertStruct(name string, st *ast.StructType) (decl.Struct, error) {
	s := decl.Struct{Name: name}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			c.logger.Warn("struct has embedded fields, emitting without fields", zap.String("name", name))
			return decl.Struct{Name: name, Unnamed: true}, nil
		}
		ref, err := convertType(f.Type)
		if err != nil {
			return decl.Struct{}, errors.WithPath(err, name, f.Names[0].Name)
		}
		for _, id := range f.Names {
			s.Fields = append(s.Fields, decl.Field{Name: id.Name, Type: ref})
		}
	}
	return s, nil
}

// addConstDecl converts one const block. A spec without type and values
// repeats the previous spec, with iota set to the spec's position.
func (c *converter) addConstDecl(gen *ast.GenDecl) error {
	var (
		typeExpr ast.Expr
		values   []ast.Expr
	)
	for pos, s := range gen.Specs {
		spec := s.(*ast.ValueSpec)
		if spec.Type != nil || len(spec.Values) > 0 {
			typeExpr, values = spec.Type, spec.Values
		}

		var ref decl.TypeRef
		if typeExpr != nil {
			var err error
			ref, err = convertType(typeExpr)
			if err != nil {
				return errors.WithPath(err, spec.Names[0].Name)
			}
		}

		for i, id := range spec.Names {
			if id.Name == "_" {
				continue
			}
			var value decl.Expr = decl.Opaque{Text: "<missing>"}
			if i < len(values) {
				value = convertExpr(values[i], uint64(pos))
			}
			c.set.Consts = append(c.set.Consts, decl.Const{Name: id.Name, Type: ref, Value: value})
		}
	}
	return nil
}

// convertType accepts identifiers, selectors, pointers and fixed arrays.
// Everything else is rejected here so later stages only see the three
// supported shapes.
func convertType(expr ast.Expr) (decl.TypeRef, error) {
	switch v := expr.(type) {
	case *ast.Ident:
		return decl.NewNamed(v.Name), nil
	case *ast.SelectorExpr:
		path, ok := selectorPath(v)
		if !ok {
			return nil, errors.UnsupportedType(errors.PhaseIndex, nil, types.ExprString(expr))
		}
		return decl.NewNamed(path...), nil
	case *ast.StarExpr:
		elem, err := convertType(v.X)
		if err != nil {
			return nil, err
		}
		return decl.Pointer{Elem: elem}, nil
	case *ast.ArrayType:
		if v.Len == nil {
			return nil, errors.UnsupportedType(errors.PhaseIndex, nil, "slice "+types.ExprString(expr))
		}
		if _, ok := v.Len.(*ast.Ellipsis); ok {
			return nil, errors.UnsupportedType(errors.PhaseIndex, nil, types.ExprString(expr))
		}
		elem, err := convertType(v.Elt)
		if err != nil {
			return nil, err
		}
		return decl.FixedArray{Elem: elem, Len: convertExpr(v.Len, 0)}, nil
	case *ast.ParenExpr:
		return convertType(v.X)
	case *ast.IndexExpr:
		// Generic instantiations keep only their outer path, e.g. core::option::Option<fn()>.
		return convertType(v.X)
	case *ast.IndexListExpr:
		return convertType(v.X)
	default:
		return nil, errors.UnsupportedType(errors.PhaseIndex, nil, fmt.Sprintf("%T %s", expr, types.ExprString(expr)))
	}
}

func selectorPath(sel *ast.SelectorExpr) ([]string, bool) {
	switch x := sel.X.(type) {
	case *ast.Ident:
		return []string{x.Name, sel.Sel.Name}, true
	case *ast.SelectorExpr:
		prefix, ok := selectorPath(x)
		if !ok {
			return nil, false
		}
		return append(prefix, sel.Sel.Name), true
	default:
		return nil, false
	}
}

// convertExpr keeps integer literals, iota and negations; any other
// expression is preserved verbatim and only fails if something needs its
// value.
func convertExpr(expr ast.Expr, iotaVal uint64) decl.Expr {
	switch v := expr.(type) {
	case *ast.Ident:
		if v.Name == "iota" {
			return decl.IntLit{Value: iotaVal}
		}
	case *ast.BasicLit:
		if v.Kind != token.INT {
			break
		}
		n, err := strconv.ParseUint(v.Value, 0, 64)
		if err != nil {
			break
		}
		return decl.IntLit{Value: n}
	case *ast.UnaryExpr:
		if v.Op == token.SUB {
			return decl.Neg{X: convertExpr(v.X, iotaVal)}
		}
	case *ast.ParenExpr:
		return convertExpr(v.X, iotaVal)
	}
	return decl.Opaque{Text: types.ExprString(expr)}
}
