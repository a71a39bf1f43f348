package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("gen-cstruct", pflag.ContinueOnError)
	bindFlags(fs, cfg)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := complete(cfg, fs.Args()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringArrayVarP(&cfg.Inputs, "input", "i", nil, "declaration input: .go file, .yaml/.json manifest or Go package pattern (repeatable)")
	fs.StringSliceVar(&cfg.EntryTypes, "entry-types", nil, "emit only types reachable from these names (comma-separated or repeatable)")
	fs.StringVar(&cfg.FrontendCmd, "frontend-cmd", "", "command whose stdout provides Go declarations for the inputs")
	fs.StringArrayVar(&cfg.FrontendArgs, "frontend-arg", nil, "argument passed to --frontend-cmd before the inputs (repeatable)")
	fs.StringVar(&cfg.DumpDecls, "dump-decls", "", "write the loaded declarations as a manifest to this path (- for stdout)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "abort loading after this duration (0 disables)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
}

// complete validates flag values and takes the output path from the single
// positional argument.
func complete(cfg *Config, args []string) error {
	cfg.Inputs = trimList(cfg.Inputs)
	cfg.EntryTypes = trimList(cfg.EntryTypes)
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("--input is required")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	if len(cfg.FrontendArgs) > 0 && strings.TrimSpace(cfg.FrontendCmd) == "" {
		return fmt.Errorf("--frontend-arg requires --frontend-cmd")
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one output path, got %d", len(args))
	}
	cfg.Output = strings.TrimSpace(args[0])
	if cfg.Output == "" {
		return fmt.Errorf("output path is empty")
	}
	return nil
}

func trimList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
