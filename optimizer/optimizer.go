package optimizer

import (
	"errors"
	"fmt"
	"math"

	linreg "github.com/abied-ch/ft-linear-regression"
)

// DefaultIterations is the iteration budget of a single gradient descent run.
const DefaultIterations = 500

var (
	// ErrInvalidIterations is returned for a negative iteration budget.
	ErrInvalidIterations = errors.New("optimizer: iteration budget must be positive")

	// ErrInvalidHyperparameter is returned for a learning rate or convergence
	// threshold that is not a positive finite number.
	ErrInvalidHyperparameter = errors.New("optimizer: hyperparameters must be positive and finite")
)

// Hyperparameters is one candidate of the search grid.
type Hyperparameters struct {
	LearningRate         float64 `json:"learning_rate" yaml:"learning_rate"`
	ConvergenceThreshold float64 `json:"convergence_threshold" yaml:"convergence_threshold"`
}

// Validate checks that both values are positive and finite.
func (h Hyperparameters) Validate() error {
	if !positive(h.LearningRate) {
		return fmt.Errorf("%w: learning rate %v", ErrInvalidHyperparameter, h.LearningRate)
	}
	if !positive(h.ConvergenceThreshold) {
		return fmt.Errorf("%w: convergence threshold %v", ErrInvalidHyperparameter, h.ConvergenceThreshold)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Config configures a gradient descent run.
// Zero values are replaced with sensible defaults.
type Config struct {
	Iterations int `json:"iterations" yaml:"iterations"` // default 500
}

// Optimizer runs batch gradient descent over a linreg.Dataset.
type Optimizer struct {
	iterations int
}

// NewOptimizer creates an Optimizer with the given config.
// A zero Iterations receives DefaultIterations; a negative one is an error.
func NewOptimizer(cfg Config) (*Optimizer, error) {
	o := &Optimizer{iterations: cfg.Iterations}
	if o.iterations < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, o.iterations)
	}
	if o.iterations == 0 {
		o.iterations = DefaultIterations
	}
	return o, nil
}

// Iterations returns the iteration budget.
func (o *Optimizer) Iterations() int { return o.iterations }

// Run is the outcome of one gradient descent run.
type Run struct {
	Iterations int          `json:"iterations"`
	Theta      linreg.Theta `json:"theta"`
	Converged  bool         `json:"converged"`
}

// Run performs gradient descent from theta = [0, 0].
//
// Each step predicts every sample, computes the full-batch gradient and
// moves theta against it by LearningRate. The run converges when both
// components of the step are smaller than ConvergenceThreshold. It then
// reports the 1-based iteration and the theta the step was taken from, not
// the stepped-to theta. Without convergence it reports the budget and the
// last theta.
//
// A diverging learning rate is not an error: theta overflows to Inf or NaN,
// the step test never passes and the budget is exhausted.
func (o *Optimizer) Run(ds *linreg.Dataset, h Hyperparameters) Run {
	ws := ds.NewWorkspace()
	var theta linreg.Theta

	for i := 0; i < o.iterations; i++ {
		grad := ws.Gradient(theta)
		next := step(theta, grad, h.LearningRate)
		if converged(next, theta, h.ConvergenceThreshold) {
			return Run{Iterations: i + 1, Theta: theta, Converged: true}
		}
		theta = next
	}

	return Run{Iterations: o.iterations, Theta: theta}
}

// step returns theta - lr*grad.
func step(theta, grad linreg.Theta, lr float64) linreg.Theta {
	return linreg.Theta{
		theta[0] - lr*grad[0],
		theta[1] - lr*grad[1],
	}
}

// converged tests each component against the threshold on its own.
// NaN deltas never converge.
func converged(next, theta linreg.Theta, threshold float64) bool {
	return math.Abs(next[0]-theta[0]) < threshold &&
		math.Abs(next[1]-theta[1]) < threshold
}
