package linreg

import (
	"context"
	"fmt"
)

// Keys of the persisted model document.
const (
	KeyTheta0 = "theta_0"
	KeyTheta1 = "theta_1"
	KeyMeanKm = "mean_km"
	KeyStdKm  = "std_km"
)

// ParamKeys lists the persisted keys in document order.
var ParamKeys = []string{KeyTheta0, KeyTheta1, KeyMeanKm, KeyStdKm}

// Model is the minimum artifact needed to predict the price of a car from
// its raw mileage: the fitted theta plus the statistics used to normalize
// the training mileages.
type Model struct {
	Theta0 float64 `json:"theta_0" yaml:"theta_0"`
	Theta1 float64 `json:"theta_1" yaml:"theta_1"`
	MeanKm float64 `json:"mean_km" yaml:"mean_km"`
	StdKm  float64 `json:"std_km" yaml:"std_km"`
}

// NewModel combines a fitted theta with the normalization statistics.
func NewModel(theta Theta, stats Stats) Model {
	return Model{
		Theta0: theta[0],
		Theta1: theta[1],
		MeanKm: stats.MeanKm,
		StdKm:  stats.StdKm,
	}
}

// Theta returns the fitted parameters.
func (m Model) Theta() Theta { return Theta{m.Theta0, m.Theta1} }

// Stats returns the normalization statistics.
func (m Model) Stats() Stats { return Stats{MeanKm: m.MeanKm, StdKm: m.StdKm} }

// Validate checks that every field is finite and that StdKm is nonzero.
func (m Model) Validate() error {
	for _, k := range ParamKeys {
		if v := m.param(k); !isFinite(v) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidModel, k, v)
		}
	}
	if m.StdKm == 0 {
		return fmt.Errorf("%w: %s is zero", ErrInvalidModel, KeyStdKm)
	}
	return nil
}

// Predict estimates the price for a raw mileage in km.
func (m Model) Predict(mileage float64) float64 {
	return Predict(m.Stats().Normalize(mileage), m.Theta())
}

// Line returns the intercept and slope of the fitted line in raw km units,
// so that price = intercept + slope*km.
func (m Model) Line() (intercept, slope float64) {
	slope = m.Theta1 / m.StdKm
	intercept = m.Theta0 - slope*m.MeanKm
	return intercept, slope
}

// Params returns the model as a key/value set keyed by ParamKeys.
func (m Model) Params() map[string]float64 {
	p := make(map[string]float64, len(ParamKeys))
	for _, k := range ParamKeys {
		p[k] = m.param(k)
	}
	return p
}

// ModelFromParams builds a Model from a key/value set produced by Params.
// Unknown keys are ignored; a missing key returns ErrMissingParameter.
func ModelFromParams(p map[string]float64) (Model, error) {
	for _, k := range ParamKeys {
		if _, ok := p[k]; !ok {
			return Model{}, fmt.Errorf("%w: %s", ErrMissingParameter, k)
		}
	}
	m := Model{
		Theta0: p[KeyTheta0],
		Theta1: p[KeyTheta1],
		MeanKm: p[KeyMeanKm],
		StdKm:  p[KeyStdKm],
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) param(key string) float64 {
	switch key {
	case KeyTheta0:
		return m.Theta0
	case KeyTheta1:
		return m.Theta1
	case KeyMeanKm:
		return m.MeanKm
	case KeyStdKm:
		return m.StdKm
	}
	panic("linreg: unknown model key " + key)
}

// Exporter persists a trained model.
type Exporter interface {
	Export(ctx context.Context, m Model) error
}

// Importer reads back a model written by an Exporter.
type Importer interface {
	Import(ctx context.Context) (Model, error)
}
