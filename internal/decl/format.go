package decl

import (
	"strconv"
	"strings"
)

// FormatType renders a type reference in Go type-expression syntax.
func FormatType(t TypeRef) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t TypeRef) {
	switch v := t.(type) {
	case Named:
		b.WriteString(strings.Join(v.Path, "."))
	case FixedArray:
		b.WriteByte('[')
		b.WriteString(FormatExpr(v.Len))
		b.WriteByte(']')
		writeType(b, v.Elem)
	case Pointer:
		b.WriteByte('*')
		writeType(b, v.Elem)
	case nil:
		b.WriteString("<nil>")
	}
}

// FormatExpr renders a constant expression in Go syntax.
func FormatExpr(e Expr) string {
	switch v := e.(type) {
	case IntLit:
		return strconv.FormatUint(v.Value, 10)
	case Neg:
		return "-" + FormatExpr(v.X)
	case Opaque:
		return v.Text
	default:
		return "<nil>"
	}
}
