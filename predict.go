package linreg

import "gonum.org/v1/gonum/floats"

// Theta is the parameter vector of the fitted line in normalized mileage
// space: Theta[0] is the intercept and Theta[1] the slope.
type Theta [2]float64

// IsFinite reports whether neither component is NaN or infinite.
func (t Theta) IsFinite() bool {
	return isFinite(t[0]) && isFinite(t[1])
}

// Predict computes theta[0] + theta[1]*x for a normalized mileage x.
func Predict(x float64, theta Theta) float64 {
	return theta[0] + theta[1]*x
}

// PredictAll writes the prediction for every normalized mileage in xs into
// dst and returns dst. dst and xs must have the same length.
func PredictAll(dst, xs []float64, theta Theta) []float64 {
	floats.ScaleTo(dst, theta[1], xs)
	floats.AddConst(theta[0], dst)
	return dst
}
