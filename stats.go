package linreg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds the mileage normalization statistics of a training set.
type Stats struct {
	MeanKm float64 `json:"mean_km" yaml:"mean_km"`
	StdKm  float64 `json:"std_km" yaml:"std_km"`
}

// ComputeStats computes the sample mean and the sample standard deviation
// (n-1 denominator) of the mileage column.
//
// Returns ErrInsufficientData for fewer than two samples and ErrZeroVariance
// when every sample has the same mileage.
func ComputeStats(samples []Sample) (Stats, error) {
	if err := validateSamples(samples); err != nil {
		return Stats{}, err
	}
	km, _ := columns(samples)
	return statsOf(km)
}

func statsOf(km []float64) (Stats, error) {
	// Identical mileages can still yield a tiny nonzero std from rounding in
	// the mean, so compare the range instead.
	if floats.Max(km) == floats.Min(km) {
		return Stats{}, fmt.Errorf("%w: all %d samples have mileage %v", ErrZeroVariance, len(km), km[0])
	}
	mean, std := stat.MeanStdDev(km, nil)
	if std == 0 || !isFinite(std) {
		return Stats{}, fmt.Errorf("%w: std %v", ErrZeroVariance, std)
	}
	return Stats{MeanKm: mean, StdKm: std}, nil
}

// Normalize rescales a raw mileage: (raw - MeanKm) / StdKm.
func (s Stats) Normalize(raw float64) float64 {
	return (raw - s.MeanKm) / s.StdKm
}

// Denormalize maps a normalized mileage back to km.
func (s Stats) Denormalize(z float64) float64 {
	return s.MeanKm + s.StdKm*z
}

// NormalizeAll writes Normalize(raw[i]) into dst[i] and returns dst.
// dst and raw must have the same length; they may alias.
func (s Stats) NormalizeAll(dst, raw []float64) []float64 {
	if len(dst) != len(raw) {
		panic("linreg: slice length mismatch")
	}
	for i, v := range raw {
		dst[i] = s.Normalize(v)
	}
	return dst
}
