package linreg

import (
	"math/rand"
	"testing"
)

func syntheticSamples(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, n)
	for i := range samples {
		km := rng.Float64() * 250000
		samples[i] = Sample{Mileage: km, Price: 9000 - 0.02*km + rng.NormFloat64()*300}
	}
	return samples
}

// BenchmarkWorkspaceGradient measures one full-batch gradient over 10000 samples.
func BenchmarkWorkspaceGradient(b *testing.B) {
	ds, err := NewDataset(syntheticSamples(10000, 42))
	if err != nil {
		b.Fatal(err)
	}
	ws := ds.NewWorkspace()
	theta := Theta{5000, -1000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ws.Gradient(theta)
	}
}
