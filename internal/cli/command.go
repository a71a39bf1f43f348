package cli

import (
	"github.com/spf13/cobra"

	"github.com/seitarof/gen-cstruct/internal/generator"
)

// RunnerFactory builds a runner once flags are parsed, so that collaborators
// can depend on flag values such as verbosity.
type RunnerFactory func(cfg *Config) (Runner, error)

// NewCommand returns the root command with its graph subcommand.
func NewCommand(version string, factory RunnerFactory) *cobra.Command {
	cfg := &Config{}

	root := &cobra.Command{
		Use:          "gen-cstruct [flags] <output>",
		Short:        "Generate typed-cstruct descriptors from C declarations",
		Long:         "Translate struct, alias and constant declarations into typed-cstruct layout descriptors. Use - as output to write to stdout.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := complete(cfg, args); err != nil {
				return err
			}
			r, err := factory(cfg)
			if err != nil {
				return err
			}
			return r.Run(cmd.Context(), cfg)
		},
	}
	bindFlags(root.PersistentFlags(), cfg)

	graph := &cobra.Command{
		Use:   "graph [flags] [output]",
		Short: "Write the type dependency graph",
		Long:  "Write the dependency graph of the generated types in Graphviz DOT format, or a dependencies-first type list with --order. Output defaults to stdout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{generator.Stdout}
			}
			if err := complete(cfg, args); err != nil {
				return err
			}
			r, err := factory(cfg)
			if err != nil {
				return err
			}
			return r.Graph(cmd.Context(), cfg)
		},
	}
	graph.Flags().BoolVar(&cfg.Order, "order", false, "print types in dependencies-first order instead of DOT")
	root.AddCommand(graph)

	return root
}
