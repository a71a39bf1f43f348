package errors

import (
	"fmt"
	"strings"
)

// Phase indicates the pipeline stage that produced the error
type Phase string

const (
	PhaseLoad    Phase = "load"    // frontend input decoding
	PhaseIndex   Phase = "index"   // declaration model construction
	PhaseRender  Phase = "render"  // type and expression printing
	PhaseResolve Phase = "resolve" // dependency validation
	PhaseWrite   Phase = "write"   // output emission
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedType Kind = "unsupported_type"
	KindUnsupportedExpr Kind = "unsupported_expr"
	KindInvalidLength   Kind = "invalid_length"
	KindUnresolved      Kind = "unresolved"
	KindInvalidInput    Kind = "invalid_input"
	KindIO              Kind = "io"
)

// Error is the structured error type used throughout the transpiler
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string
	Detail string
	Path   []string
	Names  []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	switch {
	case len(e.Path) > 0:
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	case e.Name != "":
		b.WriteString(" in ")
		b.WriteString(e.Name)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if len(e.Names) > 0 {
		if e.Detail == "" {
			b.WriteString(": ")
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(strings.Join(e.Names, ", "))
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the declaration the error belongs to
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Path sets the declaration/field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Names sets the offending type names
func (b *Builder) Names(names ...string) *Builder {
	b.err.Names = names
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedType creates an unsupported type shape error
func UnsupportedType(phase Phase, path []string, shape string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Path:   path,
		Detail: fmt.Sprintf("currently unsupported type %s", shape),
	}
}

// UnsupportedExpr creates an unsupported expression error
func UnsupportedExpr(phase Phase, path []string, expr string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedExpr,
		Path:   path,
		Detail: fmt.Sprintf("currently unsupported expression %s", expr),
	}
}

// InvalidLength creates an array length error
func InvalidLength(phase Phase, path []string, length string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidLength,
		Path:   path,
		Detail: fmt.Sprintf("array length %s is not a non-negative integer literal", length),
	}
}

// Unresolved creates a used-but-not-created error listing every offending name
func Unresolved(names []string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnresolved,
		Detail: "types are used but not created:",
		Names:  names,
	}
}

// InvalidInput creates an input rejection error for one frontend source
func InvalidInput(source string, cause error) *Error {
	return &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidInput,
		Name:  source,
		Cause: cause,
	}
}

// WithPath returns a copy of err with prefix prepended to its path when err
// is an *Error; other errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append(append([]string(nil), prefix...), e.Path...)
	return &cp
}
