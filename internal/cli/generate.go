package cli

import (
	"context"
	"math/rand/v2"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/prefgraph/pkg/io"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

type generateOpts struct {
	alternatives int
	criteria     int
	seed         uint64
	name         string
	output       string
	format       string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random scenario",
		Long: `Generate draws random criterion weights and, per criterion, a random chain
of preferences over the alternatives. Adjacent alternatives in a chain are
strictly ordered with probability 0.7 and equivalent otherwise.

Without --output the scenario is written to stdout.`,
		Example: `  prefgraph generate -a 6 -c 3 --seed 42 -o scenario.toml
  prefgraph generate --criteria 5 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := c.Config.Generate
			if !cmd.Flags().Changed("alternatives") {
				opts.alternatives = gen.Alternatives
			}
			if !cmd.Flags().Changed("criteria") {
				opts.criteria = gen.Criteria
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = rand.Uint64()
				if gen.Seed != nil {
					opts.seed = *gen.Seed
				}
			}
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.alternatives, "alternatives", "a", 5, "number of alternatives")
	cmd.Flags().IntVarP(&opts.criteria, "criteria", "c", 3, "number of criteria")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVar(&opts.name, "name", "", "scenario name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.json, .toml, .yaml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "toml", "stdout format: json, toml, yaml")

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	s, err := scenario.Generate(scenario.NewSource(opts.seed), opts.alternatives, opts.criteria)
	if err != nil {
		return err
	}
	s.Name = opts.name
	logger.Debug("generated scenario", "alternatives", opts.alternatives, "criteria", opts.criteria, "seed", opts.seed)

	if opts.output == "" {
		format, err := pio.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		return pio.Write(cmd.OutOrStdout(), s, format)
	}

	if err := pio.Export(s, opts.output); err != nil {
		return err
	}
	printSuccess("Generated %d alternatives over %d criteria", opts.alternatives, opts.criteria)
	printDetail("seed %d", opts.seed)
	printFile(opts.output)
	return nil
}
