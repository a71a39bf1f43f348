package printer

// Namespace is the import binding of the descriptor library in generated code.
const Namespace = "__typ"

// wellKnownTypes maps flattened primitive names to descriptor expressions.
// It is never mutated after package initialization.
var wellKnownTypes = map[string]string{
	// Rust primitives as emitted by bindgen.
	"bool":  "__typ.bool",
	"char":  "__typ.char",
	"i8":    "__typ.i8",
	"i16":   "__typ.i16",
	"i32":   "__typ.i32",
	"i64":   "__typ.i64",
	"i128":  "__typ.i128",
	"u8":    "__typ.u8",
	"u16":   "__typ.u16",
	"u32":   "__typ.u32",
	"u64":   "__typ.u64",
	"u128":  "__typ.u128",
	"f32":   "__typ.f32",
	"f64":   "__typ.f64",
	"isize": "__typ.i32",
	"usize": "__typ.u32",

	// core::ffi portability aliases.
	"core__ffi__c_char":      "__typ.u8",
	"core__ffi__c_schar":     "__typ.i8",
	"core__ffi__c_uchar":     "__typ.u8",
	"core__ffi__c_short":     "__typ.i16",
	"core__ffi__c_ushort":    "__typ.u16",
	"core__ffi__c_int":       "__typ.i32",
	"core__ffi__c_uint":      "__typ.u32",
	"core__ffi__c_long":      "__typ.i64",
	"core__ffi__c_ulong":     "__typ.u64",
	"core__ffi__c_longlong":  "__typ.i64",
	"core__ffi__c_ulonglong": "__typ.u64",
	"core__ffi__c_float":     "__typ.f32",
	"core__ffi__c_double":    "__typ.f64",
	"core__ffi__c_void":      "__typ.skip(0)",

	// std::os::raw portability aliases.
	"std__os__raw__c_char":      "__typ.u8",
	"std__os__raw__c_schar":     "__typ.i8",
	"std__os__raw__c_uchar":     "__typ.u8",
	"std__os__raw__c_short":     "__typ.i16",
	"std__os__raw__c_ushort":    "__typ.u16",
	"std__os__raw__c_int":       "__typ.i32",
	"std__os__raw__c_uint":      "__typ.u32",
	"std__os__raw__c_long":      "__typ.i64",
	"std__os__raw__c_ulong":     "__typ.u64",
	"std__os__raw__c_longlong":  "__typ.i64",
	"std__os__raw__c_ulonglong": "__typ.u64",
	"std__os__raw__c_float":     "__typ.f32",
	"std__os__raw__c_double":    "__typ.f64",
	"std__os__raw__c_void":      "__typ.skip(0)",

	// Optional function pointers are pointer sized on wasm32.
	"core__option__Option": "__typ.u32",
	"std__option__Option":  "__typ.u32",

	// Go names produced by cgo -godefs style sources.
	"int8":            "__typ.i8",
	"int16":           "__typ.i16",
	"int32":           "__typ.i32",
	"int64":           "__typ.i64",
	"uint8":           "__typ.u8",
	"uint16":          "__typ.u16",
	"uint32":          "__typ.u32",
	"uint64":          "__typ.u64",
	"byte":            "__typ.u8",
	"rune":            "__typ.i32",
	"float32":         "__typ.f32",
	"float64":         "__typ.f64",
	"uintptr":         "__typ.u32",
	"unsafe__Pointer": "__typ.u32",

	// cgo pseudo-package names.
	"C__char":      "__typ.i8",
	"C__schar":     "__typ.i8",
	"C__uchar":     "__typ.u8",
	"C__short":     "__typ.i16",
	"C__ushort":    "__typ.u16",
	"C__int":       "__typ.i32",
	"C__uint":      "__typ.u32",
	"C__long":      "__typ.i64",
	"C__ulong":     "__typ.u64",
	"C__longlong":  "__typ.i64",
	"C__ulonglong": "__typ.u64",
	"C__float":     "__typ.f32",
	"C__double":    "__typ.f64",
}

// WellKnown returns the descriptor expression for a flattened primitive name.
// Lookup is exact and case-sensitive.
func WellKnown(name string) (string, bool) {
	expr, ok := wellKnownTypes[name]
	return expr, ok
}

// IsWellKnown reports whether name needs no generated entity.
func IsWellKnown(name string) bool {
	_, ok := wellKnownTypes[name]
	return ok
}
