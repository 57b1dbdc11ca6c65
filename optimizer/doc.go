// Package optimizer fits linreg models with batch gradient descent and
// searches a grid of hyperparameters for the fastest-converging run.
//
// It provides two main capabilities:
//
//   - [Optimizer.Run] performs full-batch gradient descent from theta = [0, 0]
//     until both parameters move by less than the convergence threshold in a
//     single step, or the iteration budget (default 500) is exhausted.
//
//   - [Search.Run] evaluates every (learning rate, convergence threshold)
//     pair, learning rates outer and thresholds inner, and keeps the pair
//     that converges in the fewest iterations. Ties go to the pair evaluated
//     first.
//
// # Usage
//
//	s, err := optimizer.NewSearch(optimizer.SearchConfig{
//	    LearningRates:         []float64{0.01, 0.1, 0.5},
//	    ConvergenceThresholds: []float64{1e-3, 1e-5},
//	})
//	res, err := s.Run(ctx, ds)
//
// [Train] wraps normalization, search and export in one call.
package optimizer
