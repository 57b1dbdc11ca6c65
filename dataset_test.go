package linreg

import (
	"errors"
	"testing"
)

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset(threeCars)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ds.Len())
	}

	stats, _ := ComputeStats(threeCars)
	if ds.Stats() != stats {
		t.Errorf("Stats() = %+v, want %+v", ds.Stats(), stats)
	}

	km := ds.NormalizedMileage()
	for i, c := range threeCars {
		assertFloat(t, "normalized km", km[i], stats.Normalize(c.Mileage))
	}
}

func TestNewDatasetDoesNotAliasInput(t *testing.T) {
	samples := append([]Sample(nil), threeCars...)
	ds, err := NewDataset(samples)
	if err != nil {
		t.Fatal(err)
	}
	samples[0].Mileage = 999999

	km := ds.NormalizedMileage()
	km[1] = 42
	if got := ds.NormalizedMileage(); got[1] == 42 {
		t.Error("NormalizedMileage returned the internal slice")
	}
	if got := ds.NormalizedMileage()[0]; got != ds.Stats().Normalize(10000) {
		t.Errorf("normalized km[0] = %v changed after mutating input", got)
	}
}

func TestNewDatasetErrors(t *testing.T) {
	if _, err := NewDataset(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("NewDataset(nil) error = %v, want ErrInsufficientData", err)
	}
	same := []Sample{{Mileage: 5, Price: 1}, {Mileage: 5, Price: 2}}
	if _, err := NewDataset(same); !errors.Is(err, ErrZeroVariance) {
		t.Errorf("NewDataset(same mileage) error = %v, want ErrZeroVariance", err)
	}
}

func TestDatasetCost(t *testing.T) {
	ds, err := NewDataset(threeCars)
	if err != nil {
		t.Fatal(err)
	}
	// With theta = 0 every residual is -price.
	want := (8000.0*8000 + 6000*6000 + 4000*4000) / (2 * 3)
	assertFloat(t, "Cost(0)", ds.Cost(Theta{}), want)

	// The mean price as intercept beats zero.
	if ds.Cost(Theta{6000, 0}) >= ds.Cost(Theta{}) {
		t.Error("Cost(mean price) should be lower than Cost(0)")
	}
}
