package linreg

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Residuals writes predictions[i] - prices[i] into dst and returns dst.
func Residuals(dst, predictions, prices []float64) []float64 {
	return floats.SubTo(dst, predictions, prices)
}

// ComputeGradient returns the gradient of the mean squared error with
// respect to theta, given the residuals over the whole training set and the
// matching normalized mileages:
//
//	g[0] = mean(errs)
//	g[1] = mean(errs * xs)
func ComputeGradient(errs, xs []float64) Theta {
	n := float64(len(errs))
	return Theta{
		stat.Mean(errs, nil),
		floats.Dot(errs, xs) / n,
	}
}

// meanSquaredError returns half the mean of the squared residuals.
func meanSquaredError(errs []float64) float64 {
	return floats.Dot(errs, errs) / (2 * float64(len(errs)))
}
