package linreg

import (
	"math"
	"testing"
)

func TestPredict(t *testing.T) {
	tests := []struct {
		x     float64
		theta Theta
		want  float64
	}{
		{0, Theta{0, 0}, 0},
		{0, Theta{6000, -2000}, 6000},
		{1, Theta{6000, -2000}, 4000},
		{-1.5, Theta{6000, -2000}, 9000},
	}
	for _, tt := range tests {
		assertFloat(t, "Predict", Predict(tt.x, tt.theta), tt.want)
	}
}

func TestPredictAllMatchesPredict(t *testing.T) {
	xs := []float64{-1.2, -0.3, 0, 0.7, 2.5}
	theta := Theta{6331.8, -1106.04}
	got := PredictAll(make([]float64, len(xs)), xs, theta)
	for i, x := range xs {
		assertFloat(t, "PredictAll", got[i], Predict(x, theta))
	}
}

func TestThetaIsFinite(t *testing.T) {
	tests := []struct {
		theta Theta
		want  bool
	}{
		{Theta{}, true},
		{Theta{1e300, -1e300}, true},
		{Theta{math.NaN(), 0}, false},
		{Theta{0, math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		if got := tt.theta.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.theta, got, tt.want)
		}
	}
}
