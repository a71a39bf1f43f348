package decl

import "strings"

// PathSeparator joins the segments of a scoped type name into one lookup key.
const PathSeparator = "__"

// Set is the flat declaration list handed over by a frontend.
type Set struct {
	Structs []Struct
	Aliases []Alias
	Consts  []Const
}

// Struct is one struct declaration; field order is binary layout order.
type Struct struct {
	Name   string
	Fields []Field
	// Unnamed marks a struct without a named-field representation
	// (tuple-like or unit). It is emitted without fields.
	Unnamed bool
}

// Field is one named struct member.
type Field struct {
	Name string
	Type TypeRef
}

// Alias is a type alias declaration.
type Alias struct {
	Name string
	Type TypeRef
}

// Const is an integer constant declaration. Type is nil for untyped constants.
type Const struct {
	Name  string
	Type  TypeRef
	Value Expr
}

// TypeRef is a type reference: Named, FixedArray or Pointer.
type TypeRef interface {
	isTypeRef()
}

// Named references a declared or well-known type by its scoped path.
type Named struct {
	Path []string
}

// FixedArray is an array with a compile-time length.
type FixedArray struct {
	Elem TypeRef
	Len  Expr
}

// Pointer references its pointee type.
type Pointer struct {
	Elem TypeRef
}

func (Named) isTypeRef()      {}
func (FixedArray) isTypeRef() {}
func (Pointer) isTypeRef()    {}

// NewNamed builds a Named reference from path segments.
func NewNamed(path ...string) Named {
	return Named{Path: path}
}

// Key flattens the path into a single lookup token.
func (n Named) Key() string {
	return strings.Join(n.Path, PathSeparator)
}

// Simple reports the name when the path has exactly one segment.
func (n Named) Simple() (string, bool) {
	if len(n.Path) != 1 {
		return "", false
	}
	return n.Path[0], true
}

// Expr is a constant expression: IntLit, Neg or Opaque.
type Expr interface {
	isExpr()
}

// IntLit is a non-negative integer literal.
type IntLit struct {
	Value uint64
}

// Neg is unary negation.
type Neg struct {
	X Expr
}

// Opaque keeps an expression the frontend could not classify.
type Opaque struct {
	Text string
}

func (IntLit) isExpr() {}
func (Neg) isExpr()    {}
func (Opaque) isExpr() {}
