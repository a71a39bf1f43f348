package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestParseArgs_Success(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"-i", "a.go",
		"--input", "b.yaml",
		"--entry-types", "Foo, Bar",
		"--entry-types", "Baz",
		"--frontend-cmd", "go",
		"--frontend-arg", "tool",
		"--frontend-arg", "cgo",
		"--timeout", "5s",
		"-v",
		"out.ts",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if want := []string{"a.go", "b.yaml"}; !reflect.DeepEqual(cfg.Inputs, want) {
		t.Fatalf("inputs = %v, want %v", cfg.Inputs, want)
	}
	if want := []string{"Foo", "Bar", "Baz"}; !reflect.DeepEqual(cfg.EntryTypes, want) {
		t.Fatalf("entry types = %v, want %v", cfg.EntryTypes, want)
	}
	if want := []string{"tool", "cgo"}; !reflect.DeepEqual(cfg.FrontendArgs, want) {
		t.Fatalf("frontend args = %v, want %v", cfg.FrontendArgs, want)
	}
	if cfg.Timeout != 5*time.Second || !cfg.Verbose {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.OutputFilename() != "out.ts" {
		t.Fatalf("output = %q, want out.ts", cfg.OutputFilename())
	}
}

func TestParseArgs_Version(t *testing.T) {
	cfg, err := ParseArgs([]string{"--version"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatal("expected ShowVersion")
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input", args: []string{"out.ts"}},
		{name: "blank input", args: []string{"-i", " ", "out.ts"}},
		{name: "missing output", args: []string{"-i", "a.go"}},
		{name: "two outputs", args: []string{"-i", "a.go", "a.ts", "b.ts"}},
		{name: "negative timeout", args: []string{"-i", "a.go", "--timeout", "-1s", "out.ts"}},
		{name: "frontend arg without command", args: []string{"-i", "a.go", "--frontend-arg", "x", "out.ts"}},
		{name: "unknown flag", args: []string{"--header", "a.h", "out.ts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
