package linreg

// Dataset is a normalized training set. It is built once from raw samples
// and shared read-only by every optimizer run.
type Dataset struct {
	stats  Stats
	km     []float64 // normalized mileage
	prices []float64
}

// NewDataset validates samples, computes the normalization statistics and
// caches the normalized mileage column.
func NewDataset(samples []Sample) (*Dataset, error) {
	if err := validateSamples(samples); err != nil {
		return nil, err
	}
	km, prices := columns(samples)
	stats, err := statsOf(km)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		stats:  stats,
		km:     stats.NormalizeAll(km, km),
		prices: prices,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.km) }

// Stats returns the normalization statistics.
func (d *Dataset) Stats() Stats { return d.stats }

// NormalizedMileage returns a copy of the normalized mileage column.
func (d *Dataset) NormalizedMileage() []float64 {
	return append([]float64(nil), d.km...)
}

// Cost returns half the mean squared error of theta over the dataset.
func (d *Dataset) Cost(theta Theta) float64 {
	return d.NewWorkspace().Cost(theta)
}

// Workspace holds the scratch vectors for one optimizer run, so that the
// iteration loop does not allocate. A Workspace is not safe for concurrent
// use; give every goroutine its own.
type Workspace struct {
	ds          *Dataset
	predictions []float64
	residuals   []float64
}

// NewWorkspace allocates scratch vectors sized for d.
func (d *Dataset) NewWorkspace() *Workspace {
	return &Workspace{
		ds:          d,
		predictions: make([]float64, len(d.km)),
		residuals:   make([]float64, len(d.km)),
	}
}

// Gradient computes predictions and residuals for theta over the full
// dataset and returns the cost gradient.
func (w *Workspace) Gradient(theta Theta) Theta {
	w.residualsFor(theta)
	return ComputeGradient(w.residuals, w.ds.km)
}

// Cost returns half the mean squared error of theta.
func (w *Workspace) Cost(theta Theta) float64 {
	return meanSquaredError(w.residualsFor(theta))
}

func (w *Workspace) residualsFor(theta Theta) []float64 {
	PredictAll(w.predictions, w.ds.km, theta)
	return Residuals(w.residuals, w.predictions, w.ds.prices)
}
