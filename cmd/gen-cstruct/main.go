package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/seitarof/gen-cstruct/internal/cli"
	"github.com/seitarof/gen-cstruct/internal/frontend"
	"github.com/seitarof/gen-cstruct/internal/generator"
	"github.com/seitarof/gen-cstruct/internal/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var logger *zap.Logger
	cmd := cli.NewCommand(version, func(cfg *cli.Config) (cli.Runner, error) {
		l, err := logging.New(cfg.Verbose)
		if err != nil {
			return nil, err
		}
		logger = l

		var opts []frontend.Option
		if cfg.FrontendCmd != "" {
			opts = append(opts, frontend.WithCommand(cfg.FrontendCmd, cfg.FrontendArgs...))
		}
		w := generator.NewFileWriter(os.Stdout)
		return cli.NewRunner(
			frontend.New(logger, opts...),
			generator.New(w, logger),
			w,
			logger,
		), nil
	})

	err := cmd.ExecuteContext(ctx)
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
