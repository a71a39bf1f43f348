package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/emitter"
	"github.com/seitarof/gen-cstruct/internal/entity"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// Stdout is the output name that selects standard output.
const Stdout = "-"

// Generator emits descriptor source for an entity set and writes it out.
type Generator interface {
	Generate(cfg Config, es entity.Entities) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	Entries() []string
}

// FileWriter writes generated code to its destination.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	emitter *emitter.Emitter
	writer  FileWriter
	logger  *zap.Logger
}

type fileWriter struct {
	stdout io.Writer
}

// New creates a code generator.
func New(w FileWriter, logger *zap.Logger) Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &generatorImpl{
		emitter: emitter.New(logger),
		writer:  w,
		logger:  logger,
	}
}

// NewFileWriter creates a writer that creates missing parent directories.
// The name "-" writes to stdout instead.
func NewFileWriter(stdout io.Writer) FileWriter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &fileWriter{stdout: stdout}
}

func (g *generatorImpl) Generate(cfg Config, es entity.Entities) error {
	src, err := g.emitter.Emit(es, cfg.Entries())
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), []byte(src)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	g.logger.Debug("descriptors written",
		zap.String("output", cfg.OutputFilename()),
		zap.Int("bytes", len(src)),
	)
	return nil
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == Stdout {
		if _, err := w.stdout.Write(data); err != nil {
			return ioError("stdout", err)
		}
		return nil
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ioError(filename, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return ioError(filename, err)
	}
	return nil
}

func ioError(name string, cause error) error {
	return errors.New(errors.PhaseWrite, errors.KindIO).Name(name).Cause(cause).Build()
}
