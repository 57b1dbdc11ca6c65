package optimizer

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	linreg "github.com/abied-ch/ft-linear-regression"
)

// Train normalizes samples, searches cfg's grid for the fastest-converging
// hyperparameters and exports the winning model through exp.
//
// Configuration and data errors are reported before any optimizer run.
// A nil exp skips the export.
func Train(ctx context.Context, samples []linreg.Sample, cfg SearchConfig, exp linreg.Exporter) (linreg.Model, Result, error) {
	s, err := NewSearch(cfg)
	if err != nil {
		return linreg.Model{}, Result{}, err
	}
	ds, err := linreg.NewDataset(samples)
	if err != nil {
		return linreg.Model{}, Result{}, err
	}

	logger := logr.FromContextOrDiscard(ctx)
	stats := ds.Stats()
	logger.Info("Normalized dataset", "samples", ds.Len(), "meanKm", stats.MeanKm, "stdKm", stats.StdKm)

	res, err := s.Run(ctx, ds)
	if err != nil {
		return linreg.Model{}, Result{}, err
	}

	model := linreg.NewModel(res.Theta, stats)
	if exp != nil {
		if err := exp.Export(ctx, model); err != nil {
			return linreg.Model{}, Result{}, fmt.Errorf("export model: %w", err)
		}
	}

	logger.Info("Training finished",
		"learningRate", res.LearningRate,
		"convergenceThreshold", res.ConvergenceThreshold,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"cost", res.Cost)
	return model, res, nil
}
