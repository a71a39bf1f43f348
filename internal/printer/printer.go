package printer

import (
	"fmt"
	"strconv"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// Render prints a type reference as a descriptor-construction expression and
// returns the generated types it depends on.
func Render(t decl.TypeRef) (string, Deps, error) {
	deps := Deps{}
	expr, err := render(t, deps)
	if err != nil {
		return "", nil, err
	}
	return expr, deps, nil
}

func render(t decl.TypeRef, deps Deps) (string, error) {
	switch v := t.(type) {
	case decl.Named:
		if len(v.Path) == 0 {
			return "", errors.UnsupportedType(errors.PhaseRender, nil, "with an empty path")
		}
		key := v.Key()
		if expr, ok := WellKnown(key); ok {
			return expr, nil
		}
		deps.Add(key)
		return key + "()", nil
	case decl.FixedArray:
		elem, err := render(v.Elem, deps)
		if err != nil {
			return "", err
		}
		n, err := ArrayLen(v.Len)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.sizedArray(%s, %d)", Namespace, elem, n), nil
	case decl.Pointer:
		elem, err := render(v.Elem, deps)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.ptr(%s)", Namespace, elem), nil
	default:
		return "", errors.UnsupportedType(errors.PhaseRender, nil, fmt.Sprintf("%T", t))
	}
}

// ArrayLen evaluates a fixed-array length. Only literals and negated
// literals are accepted, and the result must not be negative.
func ArrayLen(e decl.Expr) (uint64, error) {
	neg, abs, err := evalLiteral(e)
	if err != nil {
		return 0, errors.InvalidLength(errors.PhaseRender, nil, decl.FormatExpr(e))
	}
	if neg && abs != 0 {
		return 0, errors.InvalidLength(errors.PhaseRender, nil, decl.FormatExpr(e))
	}
	return abs, nil
}

// RenderExpr prints an integer literal or a negated integer literal.
func RenderExpr(e decl.Expr) (string, error) {
	neg, abs, err := evalLiteral(e)
	if err != nil {
		return "", err
	}
	if neg && abs != 0 {
		return "-" + strconv.FormatUint(abs, 10), nil
	}
	return strconv.FormatUint(abs, 10), nil
}

func evalLiteral(e decl.Expr) (neg bool, abs uint64, err error) {
	switch v := e.(type) {
	case decl.IntLit:
		return false, v.Value, nil
	case decl.Neg:
		if lit, ok := v.X.(decl.IntLit); ok {
			return true, lit.Value, nil
		}
	}
	return false, 0, errors.UnsupportedExpr(errors.PhaseRender, nil, decl.FormatExpr(e))
}
