package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

type simulateOpts struct {
	runs         int
	alternatives int
	criteria     int
	seed         uint64
	concurrency  int
}

// simulation summarizes a batch of random decisions.
type simulation struct {
	Runs   int
	Wins   []int // wins per alternative index
	Pareto int   // runs whose winner is non-dominated under both schemes
	None   int   // runs without an answer
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	var opts simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Decide many random scenarios and summarize the winners",
		Long: `Simulate generates --runs random scenarios with consecutive seeds, decides
each one and reports how often every alternative wins and how often the
winner is non-dominated under both convolution schemes.`,
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
			return runSimulate(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.runs, "runs", "n", 1000, "number of scenarios")
	cmd.Flags().IntVarP(&opts.alternatives, "alternatives", "a", 5, "alternatives per scenario")
	cmd.Flags().IntVarP(&opts.criteria, "criteria", "c", 3, "criteria per scenario")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed of the first run (default: random)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", runtime.NumCPU(), "scenarios decided in parallel")

	return cmd
}

func runSimulate(ctx context.Context, opts simulateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Simulating %d scenarios", opts.runs))
	spinner.Start()

	var done atomic.Int64
	sim, err := simulate(ctx, opts, func() {
		n := done.Add(1)
		if n%100 == 0 {
			spinner.Update(fmt.Sprintf("Simulating %d/%d", n, opts.runs))
		}
	})
	if err != nil {
		spinner.StopWithError("Simulation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Simulated %d scenarios", sim.Runs))

	printSuccess("%d runs, seeds %d..%d", sim.Runs, opts.seed, opts.seed+uint64(max(sim.Runs-1, 0)))
	fmt.Println(winsTable(sim))
	printKeyValue("Pareto", share(sim.Pareto, sim.Runs))
	if sim.None > 0 {
		printKeyValue("No answer", strconv.Itoa(sim.None))
	}
	return nil
}

// simulate decides opts.runs scenarios generated from consecutive seeds,
// at most opts.concurrency at a time. tick is called after every run.
func simulate(ctx context.Context, opts simulateOpts, tick func()) (*simulation, error) {
	if opts.runs < 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "runs must be non-negative, got %d", opts.runs)
	}
	if err := perrors.ValidateAlternatives(opts.alternatives); err != nil {
		return nil, err
	}
	if err := perrors.ValidateCriteria(opts.criteria); err != nil {
		return nil, err
	}
	if opts.criteria == 0 {
		return nil, perrors.New(perrors.ErrCodeMissingInput, "simulation needs at least one criterion")
	}

	answers := make([]dominance.Answer, opts.runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for i := range opts.runs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := scenario.Generate(scenario.NewSource(opts.seed+uint64(i)), opts.alternatives, opts.criteria)
			if err != nil {
				return err
			}
			d, err := dominance.Decide(s.Problem())
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			answers[i] = d.Answer
			if tick != nil {
				tick()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sim := &simulation{Runs: opts.runs, Wins: make([]int, opts.alternatives)}
	for _, a := range answers {
		if !a.Found() {
			sim.None++
			continue
		}
		sim.Wins[a.Index]++
		if a.Value == 1 {
			sim.Pareto++
		}
	}
	return sim, nil
}

func share(n, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.1f%%)", n, 100*float64(n)/float64(total))
}

func winsTable(sim *simulation) string {
	best := 0
	for i, w := range sim.Wins {
		if w > sim.Wins[best] {
			best = i
		}
	}

	rows := make([][]string, len(sim.Wins))
	for i, w := range sim.Wins {
		rows[i] = []string{strconv.Itoa(i + 1), share(w, sim.Runs)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Alternative", "Wins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case row == best && sim.Runs > 0:
				return styleWinner
			}
			return styleCell
		}).
		Render()
}
