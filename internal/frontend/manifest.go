package frontend

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// manifest is the YAML/JSON form of a declaration set. Types are written as
// Go type expressions; Rust-style :: paths are accepted as well.
type manifest struct {
	Structs []manifestStruct `yaml:"structs,omitempty"`
	Aliases []manifestAlias  `yaml:"aliases,omitempty"`
	Consts  []manifestConst  `yaml:"consts,omitempty"`
}

type manifestStruct struct {
	Name    string          `yaml:"name"`
	Fields  []manifestField `yaml:"fields,omitempty"`
	Unnamed bool            `yaml:"unnamed,omitempty"`
}

type manifestField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type manifestAlias struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type manifestConst struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value"`
}

func loadManifest(path string) (*decl.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// ParseManifest decodes a YAML or JSON declaration manifest.
func ParseManifest(data []byte) (*decl.Set, error) {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	set := &decl.Set{}
	for _, ms := range m.Structs {
		s := decl.Struct{Name: ms.Name, Unnamed: ms.Unnamed}
		if !ms.Unnamed {
			for _, mf := range ms.Fields {
				ref, err := parseTypeString(mf.Type)
				if err != nil {
					return nil, errors.WithPath(err, ms.Name, mf.Name)
				}
				s.Fields = append(s.Fields, decl.Field{Name: mf.Name, Type: ref})
			}
		}
		set.Structs = append(set.Structs, s)
	}
	for _, ma := range m.Aliases {
		ref, err := parseTypeString(ma.Type)
		if err != nil {
			return nil, errors.WithPath(err, ma.Name)
		}
		set.Aliases = append(set.Aliases, decl.Alias{Name: ma.Name, Type: ref})
	}
	for _, mc := range m.Consts {
		c := decl.Const{Name: mc.Name}
		if strings.TrimSpace(mc.Type) != "" {
			ref, err := parseTypeString(mc.Type)
			if err != nil {
				return nil, errors.WithPath(err, mc.Name)
			}
			c.Type = ref
		}
		value, err := parser.ParseExpr(mc.Value)
		if err != nil {
			c.Value = decl.Opaque{Text: mc.Value}
		} else {
			c.Value = convertExpr(value, 0)
		}
		set.Consts = append(set.Consts, c)
	}
	return set, nil
}

func parseTypeString(s string) (decl.TypeRef, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "::", ".")
	if s == "" {
		return nil, errors.UnsupportedType(errors.PhaseIndex, nil, "(empty)")
	}
	expr, err := parser.ParseExpr(s)
	if err != nil {
		return nil, errors.New(errors.PhaseIndex, errors.KindUnsupportedType).
			Detail("cannot parse type %q", s).
			Cause(err).
			Build()
	}
	return convertType(normalizeType(expr))
}

// normalizeType moves selectors that the expression parser attached to an
// array or pointer type back onto the element: [4]a.b.c parses as
// ([4]a.b).c because only one qualifier is allowed in type position.
func normalizeType(expr ast.Expr) ast.Expr {
	switch v := expr.(type) {
	case *ast.SelectorExpr:
		return pushSelector(normalizeType(v.X), v.Sel)
	case *ast.StarExpr:
		return &ast.StarExpr{Star: v.Star, X: normalizeType(v.X)}
	case *ast.ArrayType:
		return &ast.ArrayType{Lbrack: v.Lbrack, Len: v.Len, Elt: normalizeType(v.Elt)}
	case *ast.ParenExpr:
		return normalizeType(v.X)
	}
	return expr
}

func pushSelector(x ast.Expr, sel *ast.Ident) ast.Expr {
	switch v := x.(type) {
	case *ast.ArrayType:
		return &ast.ArrayType{Lbrack: v.Lbrack, Len: v.Len, Elt: pushSelector(v.Elt, sel)}
	case *ast.StarExpr:
		return &ast.StarExpr{Star: v.Star, X: pushSelector(v.X, sel)}
	}
	return &ast.SelectorExpr{X: x, Sel: sel}
}

// Dump writes set in manifest form.
func Dump(w io.Writer, set *decl.Set) error {
	var m manifest
	for _, s := range set.Structs {
		ms := manifestStruct{Name: s.Name, Unnamed: s.Unnamed}
		for _, f := range s.Fields {
			ms.Fields = append(ms.Fields, manifestField{Name: f.Name, Type: decl.FormatType(f.Type)})
		}
		m.Structs = append(m.Structs, ms)
	}
	for _, a := range set.Aliases {
		m.Aliases = append(m.Aliases, manifestAlias{Name: a.Name, Type: decl.FormatType(a.Type)})
	}
	for _, c := range set.Consts {
		mc := manifestConst{Name: c.Name, Value: decl.FormatExpr(c.Value)}
		if c.Type != nil {
			mc.Type = decl.FormatType(c.Type)
		}
		m.Consts = append(m.Consts, mc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
