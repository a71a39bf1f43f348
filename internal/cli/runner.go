package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/depgraph"
	"github.com/seitarof/gen-cstruct/internal/emitter"
	"github.com/seitarof/gen-cstruct/internal/entity"
	"github.com/seitarof/gen-cstruct/internal/frontend"
	"github.com/seitarof/gen-cstruct/internal/generator"
	"github.com/seitarof/gen-cstruct/internal/transpiler"
)

// GraphName is the graph identifier used in DOT output.
const GraphName = "cstruct"

// Runner orchestrates frontend/transpiler/generator layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
	Graph(ctx context.Context, cfg *Config) error
}

type runnerImpl struct {
	loader    frontend.Loader
	generator generator.Generator
	writer    generator.FileWriter
	logger    *zap.Logger
}

// NewRunner creates a default runner implementation. The writer receives
// declaration dumps and graph output.
func NewRunner(
	l frontend.Loader,
	g generator.Generator,
	w generator.FileWriter,
	logger *zap.Logger,
) Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runnerImpl{
		loader:    l,
		generator: g,
		writer:    w,
		logger:    logger,
	}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	es, err := r.build(ctx, cfg)
	if err != nil {
		return err
	}

	for _, cycle := range depgraph.New(es).Cycles() {
		r.logger.Info("reference cycle", zap.Strings("types", cycle))
	}

	return r.generator.Generate(cfg, es)
}

// Graph writes the dependency graph of the generated types, or their
// dependencies-first order when cfg.Order is set.
func (r *runnerImpl) Graph(ctx context.Context, cfg *Config) error {
	es, err := r.build(ctx, cfg)
	if err != nil {
		return err
	}
	if err := emitter.Validate(es); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	if len(cfg.EntryTypes) > 0 {
		es = reachable(es, emitter.New(r.logger).Reachable(es, cfg.EntryTypes))
	}

	g := depgraph.New(es)
	var out []byte
	if cfg.Order {
		names, err := g.Order()
		if err != nil {
			return fmt.Errorf("graph: %w", err)
		}
		if len(names) > 0 {
			out = []byte(strings.Join(names, "\n") + "\n")
		}
	} else {
		out, err = g.DOT(GraphName)
		if err != nil {
			return fmt.Errorf("graph: %w", err)
		}
		out = append(out, '\n')
	}

	if err := r.writer.Write(cfg.OutputFilename(), out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (r *runnerImpl) build(ctx context.Context, cfg *Config) (entity.Entities, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	set, err := r.loader.Load(ctx, cfg.Inputs)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if cfg.DumpDecls != "" {
		var buf bytes.Buffer
		if err := frontend.Dump(&buf, set); err != nil {
			return nil, fmt.Errorf("dump: %w", err)
		}
		if err := r.writer.Write(cfg.DumpDecls, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("dump: %w", err)
		}
	}

	es, err := transpiler.Build(set, transpiler.Options{
		EntryTypes: cfg.EntryTypes,
		Logger:     r.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("transpile: %w", err)
	}
	r.logger.Debug("entities built", zap.Int("count", len(es)))
	return es, nil
}

func reachable(es entity.Entities, names []string) entity.Entities {
	out := make(entity.Entities, len(names))
	for _, name := range names {
		out[name] = es[name]
	}
	return out
}
