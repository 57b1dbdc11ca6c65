package linreg

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %.9f, want %.9f (diff %g)", name, got, want, math.Abs(got-want))
	}
}

// threeCars is the smallest interesting training set: price falls as
// mileage grows.
var threeCars = []Sample{
	{Mileage: 10000, Price: 8000},
	{Mileage: 50000, Price: 6000},
	{Mileage: 100000, Price: 4000},
}
