package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abied-ch/ft-linear-regression/optimizer"
)

func TestSearchMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewSearchMetrics(reg)
	require.NoError(t, err)

	h := optimizer.Hyperparameters{LearningRate: 0.5, ConvergenceThreshold: 1e-3}
	m.ObserveRun(h, optimizer.Run{Iterations: 34, Converged: true})
	m.ObserveRun(h, optimizer.Run{Iterations: 500})
	m.ObserveBest(h, optimizer.Run{Iterations: 34, Converged: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("false")))
	assert.Equal(t, 34.0, testutil.ToFloat64(m.bestIterations))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.bestLearningRate))
	assert.Equal(t, 1e-3, testutil.ToFloat64(m.bestConvergenceThres))
	assert.Equal(t, 1, testutil.CollectAndCount(m.iterations))
}

func TestNewSearchMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewSearchMetrics(reg)
	require.NoError(t, err)
	_, err = NewSearchMetrics(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewSearchMetrics(reg)
	require.NoError(t, err)
	m.ObserveBest(optimizer.Hyperparameters{LearningRate: 0.1, ConvergenceThreshold: 1e-4}, optimizer.Run{Iterations: 120})

	path := filepath.Join(t.TempDir(), "linreg.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "linreg_search_best_iterations 120"), string(data))
}
