package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	pio "github.com/matzehuels/prefgraph/pkg/io"
	"github.com/matzehuels/prefgraph/pkg/pipeline"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// decideOpts holds the flags shared by commands that run a decision.
type decideOpts struct {
	requireNormalized bool
	tolerance         float64
	noCache           bool
	refresh           bool
}

func (o *decideOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.requireNormalized, "require-normalized", false, "reject weights that do not sum to 1")
	cmd.Flags().Float64Var(&o.tolerance, "tolerance", 0, "allowed deviation of the weight sum from 1 (default 0.011)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the decision cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results but store fresh ones")
}

// applyConfig fills flags the user did not set from the [decide] section.
func (o *decideOpts) applyConfig(cmd *cobra.Command, cfg DecideConfig) {
	if !cmd.Flags().Changed("require-normalized") {
		o.requireNormalized = cfg.RequireNormalized
	}
	if !cmd.Flags().Changed("tolerance") {
		o.tolerance = cfg.Tolerance
	}
}

func (o *decideOpts) pipelineOptions(s *scenario.Scenario) pipeline.Options {
	return pipeline.Options{
		Scenario:          s,
		RequireNormalized: o.requireNormalized,
		Tolerance:         o.tolerance,
		Refresh:           o.refresh,
	}
}

// decideCommand creates the decide command.
func (c *CLI) decideCommand() *cobra.Command {
	var (
		opts   decideOpts
		stages bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "decide <scenario>",
		Short: "Pick the best alternative of a scenario",
		Long: `Decide runs a scenario file (JSON, TOML or YAML) through the relational
and the weighted additive convolution and prints the winning alternative.

Use --stages to print every intermediate matrix and --format json to get the
full decision as JSON.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != outputText && format != outputJSON {
				return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be text or json)", format)
			}
			opts.applyConfig(cmd, c.Config.Decide)

			res, err := c.decideFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if format == outputJSON {
				return writeDecisionJSON(cmd.OutOrStdout(), res.Decision)
			}
			printDecision(res)
			if stages {
				printStages(res.Decision)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&stages, "stages", false, "print every intermediate matrix")
	cmd.Flags().StringVarP(&format, "format", "f", outputText, "output format: text, json")

	return cmd
}

// decideFile imports a scenario and runs it through a cached runner.
func (c *CLI) decideFile(ctx context.Context, path string, opts decideOpts) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := pio.Import(path)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	res, err := runner.Decide(ctx, opts.pipelineOptions(s))
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Decided %d alternatives over %d criteria", s.Alternatives, len(s.Criteria)))
	return res, nil
}

func writeDecisionJSON(w io.Writer, d *dominance.Decision) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func printDecision(res *pipeline.Result) {
	d := res.Decision
	if !d.Answer.Found() {
		printWarning("No alternatives to choose from")
		return
	}

	i := d.Answer.Index
	printSuccess("Alternative %s wins", StyleNumber.Render(fmt.Sprint(d.Answer.Alternative())))
	printKeyValue("Q1", formatValue(d.Q1[i]))
	printKeyValue("Q2", formatValue(d.Q2[i]))
	printKeyValue("Result", formatValue(d.Answer.Value))
	if d.Pareto() {
		printDetail("non-dominated under both schemes")
	} else {
		printDetail("no alternative is non-dominated under both schemes")
	}
	printCacheStatus(res.CacheHit)
}

func printStages(d *dominance.Decision) {
	winner := d.Answer.Index
	section := func(title, body string) {
		fmt.Println()
		fmt.Println(StyleTitle.Render(title))
		fmt.Println(body)
	}

	for _, k := range d.Criteria {
		section(fmt.Sprintf("Dominance, criterion %d", k), matrixTable(d.Dominance[k], winner))
	}
	section("Relational convolution", matrixTable(d.Relational, winner))
	section("Strict convolution", matrixTable(d.Strict, winner))
	section("Q1", vectorTable(d.Q1, winner))
	section("Additive convolution", matrixTable(d.Additive, winner))
	section("Q2 strict convolution", matrixTable(d.Q2Strict, winner))
	section("Q2", vectorTable(d.Q2, winner))
	section("Result", vectorTable(d.Result, winner))
}
