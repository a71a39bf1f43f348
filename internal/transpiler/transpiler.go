// Package transpiler turns a declaration set into typed-cstruct descriptor
// source. It performs no I/O and keeps no state between calls.
package transpiler

import (
	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/emitter"
	"github.com/seitarof/gen-cstruct/internal/entity"
	"github.com/seitarof/gen-cstruct/internal/enumlike"
)

// Options tunes one transpilation.
type Options struct {
	// EntryTypes prunes the output to entities reachable from these names.
	// Empty means every entity is emitted.
	EntryTypes []string
	Logger     *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Transpile renders set into one generated source file.
func Transpile(set *decl.Set, opts Options) (string, error) {
	es, err := Build(set, opts)
	if err != nil {
		return "", err
	}
	return emitter.New(opts.logger()).Emit(es, opts.EntryTypes)
}

// Build indexes set, infers enum groups and returns the resulting entities
// without emitting them.
func Build(set *decl.Set, opts Options) (entity.Entities, error) {
	logger := opts.logger()
	ix := decl.NewIndex(set)

	groups, err := enumlike.Synthesize(ix)
	if err != nil {
		return nil, err
	}
	logger.Debug("declarations indexed",
		zap.Int("structs", len(ix.Structs)),
		zap.Int("aliases", len(ix.Aliases)),
		zap.Int("consts", len(ix.Consts)),
		zap.Int("enums", len(groups)),
	)

	return entity.NewBuilder(logger).Build(ix, groups)
}
