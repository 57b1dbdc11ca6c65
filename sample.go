package linreg

import (
	"fmt"
	"math"
)

// Sample is one row of the training set: a car's mileage in km and the
// price it sold for.
type Sample struct {
	Mileage float64 `json:"km" yaml:"km"`
	Price   float64 `json:"price" yaml:"price"`
}

// Validate checks that mileage and price are finite and non-negative.
func (s Sample) Validate() error {
	if !isFinite(s.Mileage) || s.Mileage < 0 {
		return fmt.Errorf("%w: mileage %v", ErrInvalidSample, s.Mileage)
	}
	if !isFinite(s.Price) || s.Price < 0 {
		return fmt.Errorf("%w: price %v", ErrInvalidSample, s.Price)
	}
	return nil
}

// columns splits samples into the mileage and price columns.
func columns(samples []Sample) (km, price []float64) {
	km = make([]float64, len(samples))
	price = make([]float64, len(samples))
	for i, s := range samples {
		km[i] = s.Mileage
		price[i] = s.Price
	}
	return km, price
}

func validateSamples(samples []Sample) error {
	if len(samples) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientData, len(samples))
	}
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
