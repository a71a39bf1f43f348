package frontend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/decl"
	"github.com/seitarof/gen-cstruct/internal/errors"
)

func (l *loaderImpl) runCommand(ctx context.Context, inputs []string) (*decl.Set, error) {
	args := append(append([]string(nil), l.command[1:]...), inputs...)
	cmd := exec.CommandContext(ctx, l.command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	l.logger.Debug("running frontend", zap.String("command", l.command[0]), zap.Strings("args", args))
	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return nil, errors.InvalidInput(l.command[0], err)
	}

	set, err := ParseGoSource(l.command[0]+" output", out, l.logger)
	if err != nil {
		return nil, errors.InvalidInput(l.command[0], err)
	}
	return set, nil
}
