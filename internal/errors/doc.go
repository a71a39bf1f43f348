// Package errors provides the structured error type returned by every stage
// of the declaration-to-descriptor pipeline.
//
// Errors carry the Phase in which they were raised and a Kind describing the
// failure. Declaration names, field paths and unresolved type names are kept
// as data so callers can inspect them with errors.As:
//
//	err := errors.New(errors.PhaseRender, errors.KindUnsupportedType).
//		Name("point").
//		Path("point", "coords").
//		Detail("slice types have no fixed layout").
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
