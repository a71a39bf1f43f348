package frontend

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

const testdataDir = "../../testdata/decls/"

func TestParseGoSource_ConvertsDeclarations(t *testing.T) {
	src := `package sample

type Mode uint32

const (
	Mode_Off Mode = iota
	Mode_On
	_
	Mode_Neg Mode = -1
	Mode_Mask Mode = 1 << 4
)

const Untyped = 7

type Pair = [2]*C.int

type Node struct {
	Next, Prev *Node
	Data       [0x10]uint8
}
`
	set, err := ParseGoSource("sample.go", []byte(src), nil)
	if err != nil {
		t.Fatalf("ParseGoSource() error = %v", err)
	}

	wantStructs := []decl.Struct{{
		Name: "Node",
		Fields: []decl.Field{
			{Name: "Next", Type: decl.Pointer{Elem: decl.NewNamed("Node")}},
			{Name: "Prev", Type: decl.Pointer{Elem: decl.NewNamed("Node")}},
			{Name: "Data", Type: decl.FixedArray{Elem: decl.NewNamed("uint8"), Len: decl.IntLit{Value: 16}}},
		},
	}}
	if !reflect.DeepEqual(set.Structs, wantStructs) {
		t.Fatalf("structs = %#v, want %#v", set.Structs, wantStructs)
	}

	wantAliases := []decl.Alias{
		{Name: "Mode", Type: decl.NewNamed("uint32")},
		{Name: "Pair", Type: decl.FixedArray{
			Elem: decl.Pointer{Elem: decl.NewNamed("C", "int")},
			Len:  decl.IntLit{Value: 2},
		}},
	}
	if !reflect.DeepEqual(set.Aliases, wantAliases) {
		t.Fatalf("aliases = %#v, want %#v", set.Aliases, wantAliases)
	}

	mode := decl.NewNamed("Mode")
	wantConsts := []decl.Const{
		{Name: "Mode_Off", Type: mode, Value: decl.IntLit{Value: 0}},
		{Name: "Mode_On", Type: mode, Value: decl.IntLit{Value: 1}},
		{Name: "Mode_Neg", Type: mode, Value: decl.Neg{X: decl.IntLit{Value: 1}}},
		{Name: "Mode_Mask", Type: mode, Value: decl.Opaque{Text: "1 << 4"}},
		{Name: "Untyped", Value: decl.IntLit{Value: 7}},
	}
	if !reflect.DeepEqual(set.Consts, wantConsts) {
		t.Fatalf("consts = %#v, want %#v", set.Consts, wantConsts)
	}
}

func TestParseGoSource_EmbeddedFieldMakesUnnamedStruct(t *testing.T) {
	src := `package sample

type Wrapper struct {
	Inner
	Extra uint32
}
`
	set, err := ParseGoSource("sample.go", []byte(src), nil)
	if err != nil {
		t.Fatalf("ParseGoSource() error = %v", err)
	}
	if len(set.Structs) != 1 || !set.Structs[0].Unnamed || len(set.Structs[0].Fields) != 0 {
		t.Fatalf("expected unnamed struct without fields, got %#v", set.Structs)
	}
}

func TestParseGoSource_RejectsUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantPath string
	}{
		{
			name:     "slice field",
			src:      "package p\ntype S struct {\n\tItems []int32\n}\n",
			wantPath: "S.Items",
		},
		{
			name:     "map alias",
			src:      "package p\ntype M map[string]int32\n",
			wantPath: "M",
		},
		{
			name:     "func field",
			src:      "package p\ntype S struct {\n\tCb func()\n}\n",
			wantPath: "S.Cb",
		},
		{
			name:     "generic type",
			src:      "package p\ntype G[T any] struct {\n\tV T\n}\n",
			wantPath: "G",
		},
		{
			name:     "ellipsis array",
			src:      "package p\ntype A = [...]int32\n",
			wantPath: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGoSource("p.go", []byte(tt.src), nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !stderrors.Is(err, errors.UnsupportedType(errors.PhaseIndex, nil, "")) {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(err.Error(), " at "+tt.wantPath) {
				t.Fatalf("error %q does not name %s", err, tt.wantPath)
			}
		})
	}
}

func TestParseManifest(t *testing.T) {
	data := []byte(`
structs:
  - name: Header
    fields:
      - name: magic
        type: "[4]core::ffi::c_char"
  - name: Opaque
    unnamed: true
aliases:
  - name: Kind
    type: "u16"
consts:
  - name: Kind_A
    type: "Kind"
    value: "-2"
  - name: Kind_B
    type: "Kind"
    value: "FOO | BAR"
  - name: Loose
    value: "3"
`)
	set, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	want := &decl.Set{
		Structs: []decl.Struct{
			{Name: "Header", Fields: []decl.Field{{
				Name: "magic",
				Type: decl.FixedArray{Elem: decl.NewNamed("core", "ffi", "c_char"), Len: decl.IntLit{Value: 4}},
			}}},
			{Name: "Opaque", Unnamed: true},
		},
		Aliases: []decl.Alias{{Name: "Kind", Type: decl.NewNamed("u16")}},
		Consts: []decl.Const{
			{Name: "Kind_A", Type: decl.NewNamed("Kind"), Value: decl.Neg{X: decl.IntLit{Value: 2}}},
			{Name: "Kind_B", Type: decl.NewNamed("Kind"), Value: decl.Opaque{Text: "FOO | BAR"}},
			{Name: "Loose", Value: decl.IntLit{Value: 3}},
		},
	}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("ParseManifest() = %#v, want %#v", set, want)
	}
}

func TestParseTypeString_RustPaths(t *testing.T) {
	tests := []struct {
		in   string
		want decl.TypeRef
	}{
		{in: "core::ffi::c_int", want: decl.NewNamed("core", "ffi", "c_int")},
		{in: "*mut_ptr::Node", want: decl.Pointer{Elem: decl.NewNamed("mut_ptr", "Node")}},
		{
			in: "[2][3]*a::b::c",
			want: decl.FixedArray{
				Elem: decl.FixedArray{
					Elem: decl.Pointer{Elem: decl.NewNamed("a", "b", "c")},
					Len:  decl.IntLit{Value: 3},
				},
				Len: decl.IntLit{Value: 2},
			},
		},
		{
			in:   "*[4]a::b::c::d",
			want: decl.Pointer{Elem: decl.FixedArray{Elem: decl.NewNamed("a", "b", "c", "d"), Len: decl.IntLit{Value: 4}}},
		},
		{in: "core::option::Option[fn_ptr]", want: decl.NewNamed("core", "option", "Option")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTypeString(tt.in)
			if err != nil {
				t.Fatalf("parseTypeString(%q) error = %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseTypeString(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "unknown key",
			data: "structs:\n  - name: S\n    feilds: []\n",
			want: "decode manifest",
		},
		{
			name: "empty type",
			data: "aliases:\n  - name: A\n    type: \"\"\n",
			want: "at A",
		},
		{
			name: "unparsable type",
			data: "structs:\n  - name: S\n    fields:\n      - name: f\n        type: \"[4\"\n",
			want: "at S.f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestDump_RoundTrip(t *testing.T) {
	set := &decl.Set{
		Structs: []decl.Struct{{Name: "S", Fields: []decl.Field{
			{Name: "p", Type: decl.Pointer{Elem: decl.NewNamed("std", "os", "raw", "c_long")}},
			{Name: "a", Type: decl.FixedArray{Elem: decl.NewNamed("T"), Len: decl.IntLit{Value: 3}}},
		}}},
		Aliases: []decl.Alias{{Name: "T", Type: decl.NewNamed("u8")}},
		Consts: []decl.Const{
			{Name: "T_X", Type: decl.NewNamed("T"), Value: decl.Neg{X: decl.IntLit{Value: 1}}},
			{Name: "Free", Value: decl.IntLit{Value: 9}},
		},
	}

	var buf bytes.Buffer
	if err := Dump(&buf, set); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(buf.String(), "*std.os.raw.c_long") {
		t.Fatalf("dump does not contain pointer type:\n%s", buf.String())
	}

	got, err := ParseManifest(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseManifest() error = %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(got, set) {
		t.Fatalf("round trip = %#v, want %#v", got, set)
	}
}

func TestLoad_MixedInputs(t *testing.T) {
	l := New(nil)
	set, err := l.Load(context.Background(), []string{
		testdataDir + "stat.go",
		testdataDir + "packet.yaml",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var names []string
	for _, s := range set.Structs {
		names = append(names, s.Name)
	}
	if want := []string{"Timespec", "Stat_t", "Packet"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("struct order = %v, want %v", names, want)
	}
	if len(set.Aliases) != 1 || len(set.Consts) != 2 {
		t.Fatalf("unexpected aliases/consts: %#v %#v", set.Aliases, set.Consts)
	}
}

func TestLoad_Package(t *testing.T) {
	l := New(nil)
	set, err := l.Load(context.Background(), []string{"github.com/seitarof/gen-cstruct/testdata/decls/header"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var names []string
	for _, s := range set.Structs {
		names = append(names, s.Name)
	}
	if want := []string{"Vec2", "Shape", "Unused"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("struct order = %v, want %v", names, want)
	}
	if len(set.Consts) != 3 {
		t.Fatalf("consts = %d, want 3", len(set.Consts))
	}
}

func TestLoad_AccumulatesErrors(t *testing.T) {
	l := New(nil)
	_, err := l.Load(context.Background(), []string{
		testdataDir + "missing.go",
		testdataDir + "broken.yaml",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "missing.go") || !strings.Contains(msg, "broken.yaml") {
		t.Fatalf("error should name every failing input: %v", err)
	}
	if !stderrors.Is(err, errors.InvalidInput("", nil)) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_NoInputs(t *testing.T) {
	if _, err := New(nil).Load(context.Background(), nil); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLoad_Command(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	l := New(nil, WithCommand("cat"))
	set, err := l.Load(context.Background(), []string{testdataDir + "stat.go"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.Structs) != 2 || set.Structs[1].Name != "Stat_t" {
		t.Fatalf("unexpected structs: %#v", set.Structs)
	}
}

func TestLoad_CommandFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	l := New(nil, WithCommand("sh", "-c", "echo boom >&2; exit 3", "frontend"))
	_, err := l.Load(context.Background(), []string{"header.h"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error should carry frontend stderr: %v", err)
	}
}
