package optimizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/sourcegraph/conc/pool"

	linreg "github.com/abied-ch/ft-linear-regression"
	"github.com/abied-ch/ft-linear-regression/internal/logging"
)

var (
	// ErrEmptyCandidates is returned when either candidate list is empty.
	ErrEmptyCandidates = errors.New("optimizer: learning rates and convergence thresholds must not be empty")

	// ErrNoFiniteResult is returned when every run of the grid diverged.
	ErrNoFiniteResult = errors.New("optimizer: every candidate diverged")
)

// Observer is notified of search progress. Calls happen on the goroutine
// that called Search.Run, in grid order.
type Observer interface {
	// ObserveRun is called once per evaluated candidate.
	ObserveRun(h Hyperparameters, r Run)
	// ObserveBest is called whenever a candidate becomes the new best.
	ObserveBest(h Hyperparameters, r Run)
}

// SearchConfig configures a hyperparameter search.
type SearchConfig struct {
	LearningRates         []float64 `json:"learning_rates" yaml:"learning_rates"`
	ConvergenceThresholds []float64 `json:"convergence_thresholds" yaml:"convergence_thresholds"`
	Iterations            int       `json:"iterations" yaml:"iterations"` // zero → 500
	Workers               int       `json:"workers" yaml:"workers"`       // zero → 1 (sequential)
	Observer              Observer  `json:"-" yaml:"-"`                   // nil → no notifications
}

// Search evaluates a grid of hyperparameters with one Optimizer.
type Search struct {
	grid      []Hyperparameters
	optimizer *Optimizer
	workers   int
	observer  Observer
}

// NewSearch validates cfg and builds the candidate grid.
func NewSearch(cfg SearchConfig) (*Search, error) {
	if len(cfg.LearningRates) == 0 || len(cfg.ConvergenceThresholds) == 0 {
		return nil, fmt.Errorf("%w: got %d learning rates and %d thresholds",
			ErrEmptyCandidates, len(cfg.LearningRates), len(cfg.ConvergenceThresholds))
	}
	grid := Grid(cfg.LearningRates, cfg.ConvergenceThresholds)
	for _, h := range grid {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}

	o, err := NewOptimizer(Config{Iterations: cfg.Iterations})
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Search{
		grid:      grid,
		optimizer: o,
		workers:   workers,
		observer:  cfg.Observer,
	}, nil
}

// Grid returns the cartesian product of learning rates and thresholds,
// learning rates in the outer loop, both in the order supplied.
func Grid(learningRates, thresholds []float64) []Hyperparameters {
	grid := make([]Hyperparameters, 0, len(learningRates)*len(thresholds))
	for _, lr := range learningRates {
		for _, ct := range thresholds {
			grid = append(grid, Hyperparameters{LearningRate: lr, ConvergenceThreshold: ct})
		}
	}
	return grid
}

// Grid returns a copy of the candidates in evaluation order.
func (s *Search) Grid() []Hyperparameters {
	return append([]Hyperparameters(nil), s.grid...)
}

// Result is the winning candidate of a search.
type Result struct {
	Hyperparameters
	Iterations int          `json:"iterations"`
	Converged  bool         `json:"converged"`
	Theta      linreg.Theta `json:"theta"`
	Cost       float64      `json:"cost"`      // half MSE of Theta over the dataset
	Evaluated  int          `json:"evaluated"` // number of candidates run
}

// best is the accumulator folded over the grid.
type best struct {
	found bool
	h     Hyperparameters
	run   Run
}

// fold returns the better of b and the candidate (h, r). A candidate wins
// only with strictly fewer iterations, so the first of two equal runs is
// kept. Runs with a non-finite theta never win.
func (b best) fold(h Hyperparameters, r Run) best {
	if !r.Theta.IsFinite() {
		return b
	}
	if b.found && r.Iterations >= b.run.Iterations {
		return b
	}
	return best{found: true, h: h, run: r}
}

// Run evaluates every candidate over ds and returns the one that converged
// in the fewest iterations.
//
// With Workers > 1 candidates are evaluated concurrently; the runs are then
// reduced in grid order, so the result matches a sequential search.
// Returns ErrNoFiniteResult if every run diverged, or ctx.Err() if the
// context is cancelled between candidates.
func (s *Search) Run(ctx context.Context, ds *linreg.Dataset) (Result, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("candidates", len(s.grid), "workers", s.workers)
	logger.V(logging.DEBUG).Info("Starting hyperparameter search", "iterations", s.optimizer.Iterations())

	runs, err := s.evaluate(ctx, ds)
	if err != nil {
		return Result{}, err
	}

	var acc best
	for i, h := range s.grid {
		r := runs[i]
		logger.V(logging.DEBUG).Info("Evaluated candidate",
			"learningRate", h.LearningRate,
			"convergenceThreshold", h.ConvergenceThreshold,
			"iterations", r.Iterations,
			"converged", r.Converged)
		if s.observer != nil {
			s.observer.ObserveRun(h, r)
		}

		next := acc.fold(h, r)
		if next == acc {
			continue
		}
		acc = next
		logger.Info("New best candidate",
			"learningRate", h.LearningRate,
			"convergenceThreshold", h.ConvergenceThreshold,
			"iterations", r.Iterations)
		if s.observer != nil {
			s.observer.ObserveBest(h, r)
		}
	}

	if !acc.found {
		return Result{}, fmt.Errorf("%w: %d candidates", ErrNoFiniteResult, len(s.grid))
	}
	return Result{
		Hyperparameters: acc.h,
		Iterations:      acc.run.Iterations,
		Converged:       acc.run.Converged,
		Theta:           acc.run.Theta,
		Cost:            ds.Cost(acc.run.Theta),
		Evaluated:       len(runs),
	}, nil
}

// evaluate runs the optimizer for every candidate and returns the runs in
// grid order.
func (s *Search) evaluate(ctx context.Context, ds *linreg.Dataset) ([]Run, error) {
	runs := make([]Run, len(s.grid))

	if s.workers == 1 {
		for i, h := range s.grid {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runs[i] = s.optimizer.Run(ds, h)
		}
		return runs, nil
	}

	p := pool.New().WithMaxGoroutines(s.workers)
	for i, h := range s.grid {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			runs[i] = s.optimizer.Run(ds, h)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
