package frontend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// Loader produces a declaration set from frontend inputs.
type Loader interface {
	Load(ctx context.Context, inputs []string) (*decl.Set, error)
}

// Option configures the default loader.
type Option func(*loaderImpl)

// WithCommand runs name with args followed by the inputs and parses its
// standard output as Go declarations instead of reading the inputs directly.
func WithCommand(name string, args ...string) Option {
	return func(l *loaderImpl) {
		l.command = append([]string{name}, args...)
	}
}

type loaderImpl struct {
	logger  *zap.Logger
	command []string
}

// New returns the default loader. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &loaderImpl{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every input and concatenates the declarations in input order.
// Inputs ending in .go are Go declaration files, .yaml/.yml/.json are
// manifests, and anything else is a Go package pattern.
func (l *loaderImpl) Load(ctx context.Context, inputs []string) (*decl.Set, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs")
	}
	if len(l.command) > 0 {
		return l.runCommand(ctx, inputs)
	}

	out := &decl.Set{}
	var errs error
	for _, input := range inputs {
		set, err := l.loadOne(ctx, input)
		if err != nil {
			errs = multierr.Append(errs, errors.InvalidInput(input, err))
			continue
		}
		merge(out, set)
		l.logger.Debug("input loaded",
			zap.String("input", input),
			zap.Int("structs", len(set.Structs)),
			zap.Int("aliases", len(set.Aliases)),
			zap.Int("consts", len(set.Consts)),
		)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (l *loaderImpl) loadOne(ctx context.Context, input string) (*decl.Set, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".go":
		return l.parseGoFile(input)
	case ".yaml", ".yml", ".json":
		return loadManifest(input)
	default:
		return l.loadPackages(ctx, input)
	}
}

func merge(dst, src *decl.Set) {
	dst.Structs = append(dst.Structs, src.Structs...)
	dst.Aliases = append(dst.Aliases, src.Aliases...)
	dst.Consts = append(dst.Consts, src.Consts...)
}
