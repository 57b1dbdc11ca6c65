package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abied-ch/ft-linear-regression/optimizer"
)

const namespace = "linreg"

// SearchMetrics records hyperparameter search progress. It implements
// optimizer.Observer.
type SearchMetrics struct {
	runs                 *prometheus.CounterVec
	iterations           prometheus.Histogram
	bestIterations       prometheus.Gauge
	bestLearningRate     prometheus.Gauge
	bestConvergenceThres prometheus.Gauge
}

var _ optimizer.Observer = (*SearchMetrics)(nil)

// NewSearchMetrics creates the search collectors and registers them with reg.
func NewSearchMetrics(reg prometheus.Registerer) (*SearchMetrics, error) {
	m := &SearchMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Gradient descent runs evaluated by the search, by convergence.",
		}, []string{"converged"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "run_iterations",
			Help:      "Iterations used by each gradient descent run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}),
		bestIterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "best_iterations",
			Help:      "Iterations of the best candidate so far.",
		}),
		bestLearningRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "best_learning_rate",
			Help:      "Learning rate of the best candidate so far.",
		}),
		bestConvergenceThres: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "best_convergence_threshold",
			Help:      "Convergence threshold of the best candidate so far.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.runs, m.iterations, m.bestIterations, m.bestLearningRate, m.bestConvergenceThres,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRun implements optimizer.Observer.
func (m *SearchMetrics) ObserveRun(_ optimizer.Hyperparameters, r optimizer.Run) {
	m.runs.WithLabelValues(strconv.FormatBool(r.Converged)).Inc()
	m.iterations.Observe(float64(r.Iterations))
}

// ObserveBest implements optimizer.Observer.
func (m *SearchMetrics) ObserveBest(h optimizer.Hyperparameters, r optimizer.Run) {
	m.bestIterations.Set(float64(r.Iterations))
	m.bestLearningRate.Set(h.LearningRate)
	m.bestConvergenceThres.Set(h.ConvergenceThreshold)
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
