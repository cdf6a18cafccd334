package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	pio "github.com/matzehuels/prefgraph/pkg/io"
	"github.com/matzehuels/prefgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	decideOpts
	criterion int    // criterion whose preference graph is drawn
	decision  bool   // draw the decision instead of a criterion
	format    string // "dot" or "svg"
	output    string // output path, "-" for stdout
	detailed  bool   // annotate nodes with reach or Q1/Q2 values
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scenario>",
		Short: "Render a preference graph or the decision to DOT or SVG",
		Long: `Render draws either the preference graph judged under one criterion
(--criterion) or the decision (--decision). In the decision graph solid edges
are strict dominance under the relational convolution, dashed edges are
weighted strict dominance, the winner is highlighted and alternatives outside
the Q1 Pareto set are greyed out.`,
		Example: `  prefgraph render scenario.toml --criterion 1
  prefgraph render scenario.toml --decision --detailed -f dot -o -`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			opts.applyConfig(cmd, c.Config.Decide)
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.criterion, "criterion", 0, "criterion id to draw")
	cmd.Flags().BoolVar(&opts.decision, "decision", false, "draw the decision")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout (default derived from the input)`)
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate nodes with stage values")
	cmd.MarkFlagsMutuallyExclusive("criterion", "decision")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := pio.Import(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.format == pipeline.FormatSVG && opts.output != "-" {
		spinner = newSpinnerWithContext(ctx, "Rendering "+input)
		spinner.Start()
	}
	art, err := runner.Render(ctx, pipeline.RenderOptions{
		Options:   opts.pipelineOptions(s),
		Criterion: opts.criterion,
		Decision:  opts.decision,
		Format:    opts.format,
		Detailed:  opts.detailed,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	logger.Debugf("Rendered %s: %d bytes", art.Format, len(art.Data))

	if opts.output == "-" {
		_, err := stdout.Write(art.Data)
		return err
	}

	path := opts.output
	if path == "" {
		path = outputPath(input, opts)
	}
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
	}

	prog.done("Rendered " + target(opts))
	printFile(path)
	printCacheStatus(art.CacheHit)
	return nil
}

// outputPath derives the output file from the input path, e.g.
// "scenario.toml" becomes "scenario.criterion-2.svg".
func outputPath(input string, opts renderOpts) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s.%s.%s", base, strings.ReplaceAll(target(opts), " ", "-"), opts.format)
}

func target(opts renderOpts) string {
	if opts.decision {
		return "decision"
	}
	return fmt.Sprintf("criterion %d", opts.criterion)
}
