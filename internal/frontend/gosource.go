package frontend

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/seitarof/gen-cstruct/internal/decl"
)

// ParseGoSource converts Go declaration source (for example the output of
// `go tool cgo -godefs`) into a declaration set.
func ParseGoSource(filename string, src []byte, logger *zap.Logger) (*decl.Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	c := newConverter(logger)
	if err := c.addFile(file); err != nil {
		return nil, err
	}
	return c.set, nil
}

func (l *loaderImpl) parseGoFile(path string) (*decl.Set, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGoSource(path, src, l.logger)
}

func (l *loaderImpl) loadPackages(ctx context.Context, pattern string) (*decl.Set, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pattern)
	}

	var errs error
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			errs = multierr.Append(errs, pkgErr)
		}
	}
	if errs != nil {
		return nil, errs
	}

	c := newConverter(l.logger)
	for _, pkg := range pkgs {
		for _, file := range sortedSyntax(pkg) {
			if err := c.addFile(file); err != nil {
				return nil, err
			}
		}
	}
	return c.set, nil
}

// sortedSyntax returns the package files ordered by file name so the
// declaration order does not depend on the build system.
func sortedSyntax(pkg *packages.Package) []*ast.File {
	files := append([]*ast.File(nil), pkg.Syntax...)
	names := make(map[*ast.File]string, len(files))
	for _, f := range files {
		names[f] = pkg.Fset.Position(f.Package).Filename
	}
	sort.Slice(files, func(i, j int) bool {
		return names[files[i]] < names[files[j]]
	})
	return files
}
