package emitter

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/entity"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

// Preamble is the import line every generated file starts with.
const Preamble = "import * as __typ from 'typed-cstruct';\n"

// Emitter renders an entity set into one text blob.
type Emitter struct {
	logger *zap.Logger
}

// New creates an emitter. A nil logger disables logging.
func New(logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{logger: logger}
}

// Emit validates es and renders either every entity or, when entries is
// non-empty, only the entities reachable from entries. Code blocks are sorted
// by their full text.
func (m *Emitter) Emit(es entity.Entities, entries []string) (string, error) {
	if err := Validate(es); err != nil {
		return "", err
	}

	var names []string
	if len(entries) == 0 {
		names = es.Names()
	} else {
		names = m.Reachable(es, entries)
	}

	blocks := make([]string, 0, len(names))
	for _, name := range names {
		blocks = append(blocks, es[name].Code)
	}
	sort.Strings(blocks)

	var b strings.Builder
	b.WriteString(Preamble)
	for _, block := range blocks {
		b.WriteString(block)
	}
	return b.String(), nil
}

// Validate checks that every dependency names an entity or an ignored helper
// type. All offending names are reported in one error.
func Validate(es entity.Entities) error {
	missing := map[string]struct{}{}
	for _, e := range es {
		for _, dep := range e.Deps {
			if _, ok := es[dep]; ok {
				continue
			}
			if entity.Ignored(dep) {
				continue
			}
			missing[dep] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return errors.Unresolved(names)
}

// Reachable walks the dependency edges from entries with a LIFO work-list
// and returns the visited entity names in visit order. Names that are not
// entities are dropped without error.
func (m *Emitter) Reachable(es entity.Entities, entries []string) []string {
	work := append([]string(nil), entries...)
	visited := map[string]struct{}{}
	var out []string

	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]

		if _, seen := visited[name]; seen {
			continue
		}
		visited[name] = struct{}{}

		e, ok := es[name]
		if !ok {
			m.logger.Debug("dropping name without entity", zap.String("name", name))
			continue
		}
		out = append(out, name)
		work = append(work, e.Deps...)
	}
	return out
}
