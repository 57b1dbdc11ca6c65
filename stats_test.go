package linreg

import (
	"errors"
	"math"
	"testing"
)

func TestComputeStatsThreeCars(t *testing.T) {
	s, err := ComputeStats(threeCars)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}

	mean := (10000.0 + 50000.0 + 100000.0) / 3
	var ss float64
	for _, c := range threeCars {
		d := c.Mileage - mean
		ss += d * d
	}
	// Sample standard deviation, n-1 denominator.
	std := math.Sqrt(ss / 2)

	assertFloat(t, "MeanKm", s.MeanKm, mean)
	assertFloat(t, "StdKm", s.StdKm, std)
	if math.Abs(s.MeanKm-53333.33) > 0.01 {
		t.Errorf("MeanKm = %f, want ~53333.33", s.MeanKm)
	}
	if math.Abs(s.StdKm-45092.50) > 0.01 {
		t.Errorf("StdKm = %f, want ~45092.50", s.StdKm)
	}
}

func TestComputeStatsErrors(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    error
	}{
		{"empty", nil, ErrInsufficientData},
		{"single", []Sample{{Mileage: 1000, Price: 10}}, ErrInsufficientData},
		{"same mileage", []Sample{{1000, 10}, {1000, 20}, {1000, 30}}, ErrZeroVariance},
		{"fractional same mileage", []Sample{{0.1, 1}, {0.1, 2}, {0.1, 3}}, ErrZeroVariance},
		{"negative mileage", []Sample{{-1, 10}, {1000, 20}}, ErrInvalidSample},
		{"NaN price", []Sample{{1, math.NaN()}, {1000, 20}}, ErrInvalidSample},
		{"infinite mileage", []Sample{{math.Inf(1), 10}, {1000, 20}}, ErrInvalidSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeStats(tt.samples)
			if !errors.Is(err, tt.want) {
				t.Errorf("ComputeStats() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	s, err := ComputeStats(threeCars)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []float64{0, 1, 10000, 53333.33, 240000, 1e7} {
		got := s.Denormalize(s.Normalize(m))
		if math.Abs(got-m) > 1e-9*math.Max(1, m) {
			t.Errorf("Denormalize(Normalize(%v)) = %v", m, got)
		}
	}
}

func TestNormalizeAllStandardizes(t *testing.T) {
	km := []float64{240000, 139800, 150500, 185530, 176000, 114800}
	samples := make([]Sample, len(km))
	for i, v := range km {
		samples[i] = Sample{Mileage: v, Price: 1}
	}
	s, err := ComputeStats(samples)
	if err != nil {
		t.Fatal(err)
	}

	z := s.NormalizeAll(make([]float64, len(km)), km)

	var sum, sq float64
	for i, v := range z {
		if v != s.Normalize(km[i]) {
			t.Errorf("z[%d] = %v, want Normalize(%v) = %v", i, v, km[i], s.Normalize(km[i]))
		}
		sum += v
		sq += v * v
	}
	assertFloat(t, "mean(z)", sum/float64(len(z)), 0)
	assertFloat(t, "var(z)", sq/float64(len(z)-1), 1)
}

func TestNormalizeAllLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NormalizeAll with mismatched lengths did not panic")
		}
	}()
	Stats{MeanKm: 0, StdKm: 1}.NormalizeAll(make([]float64, 1), make([]float64, 2))
}
