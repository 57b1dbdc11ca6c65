package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/abied-ch/ft-linear-regression/export"
	"github.com/abied-ch/ft-linear-regression/optimizer"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Defaults follow the original training script: data.csv in, model.json out.
var (
	DefaultLearningRates         = []float64{0.001, 0.01, 0.1, 0.5, 1}
	DefaultConvergenceThresholds = []float64{1e-3, 1e-4, 1e-5, 1e-6}
)

// Config is the training configuration.
type Config struct {
	DataPath              string    `yaml:"data_path"`
	ModelPath             string    `yaml:"model_path"`
	Format                string    `yaml:"format"` // empty → inferred from ModelPath
	LearningRates         []float64 `yaml:"learning_rates"`
	ConvergenceThresholds []float64 `yaml:"convergence_thresholds"`
	Iterations            int       `yaml:"iterations"`
	Workers               int       `yaml:"workers"`
	MetricsPath           string    `yaml:"metrics_path"`
	MySQLDSN              string    `yaml:"mysql_dsn"`
	MySQLTable            string    `yaml:"mysql_table"`
	NTPServer             string    `yaml:"ntp_server"`
	LogLevel              int       `yaml:"log_level"`
	Development           bool      `yaml:"development"`
}

// SearchConfig returns the optimizer settings of c.
func (c *Config) SearchConfig() optimizer.SearchConfig {
	return optimizer.SearchConfig{
		LearningRates:         append([]float64(nil), c.LearningRates...),
		ConvergenceThresholds: append([]float64(nil), c.ConvergenceThresholds...),
		Iterations:            c.Iterations,
		Workers:               c.Workers,
	}
}

// Validate checks c and reports the first problem found.
func Validate(c *Config) error {
	if c.DataPath == "" {
		return fmt.Errorf("%w: data path is required", ErrInvalidConfig)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("%w: model path is required", ErrInvalidConfig)
	}
	if c.Format != "" && c.Format != export.FormatJSON && c.Format != export.FormatYAML {
		return fmt.Errorf("%w: format %q, want %q or %q", ErrInvalidConfig, c.Format, export.FormatJSON, export.FormatYAML)
	}
	if err := validateCandidates("learning rate", c.LearningRates); err != nil {
		return err
	}
	if err := validateCandidates("convergence threshold", c.ConvergenceThresholds); err != nil {
		return err
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if c.LogLevel < 0 {
		return fmt.Errorf("%w: log level %d", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func validateCandidates(name string, values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: no %s candidates", ErrInvalidConfig, name)
	}
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 1) {
			return fmt.Errorf("%w: %s %v must be positive", ErrInvalidConfig, name, v)
		}
	}
	return nil
}
