// Command train fits the mileage/price model on a CSV dataset, picking the
// learning rate and convergence threshold that converge fastest, and exports
// the result for cmd/predict.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"

	linreg "github.com/abied-ch/ft-linear-regression"
	"github.com/abied-ch/ft-linear-regression/dataset"
	"github.com/abied-ch/ft-linear-regression/export"
	"github.com/abied-ch/ft-linear-regression/export/sqlstore"
	"github.com/abied-ch/ft-linear-regression/internal/clock"
	"github.com/abied-ch/ft-linear-regression/internal/config"
	"github.com/abied-ch/ft-linear-regression/internal/logging"
	"github.com/abied-ch/ft-linear-regression/internal/metrics"
	"github.com/abied-ch/ft-linear-regression/optimizer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "train:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	flags := flag.NewFlagSet("train", flag.ContinueOnError)
	configFile := flags.String("config", "", "YAML configuration file")
	config.BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags, *configFile)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	samples, err := dataset.LoadFile(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	exporter, closeExporter, err := newExporter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeExporter()

	reg := prometheus.NewRegistry()
	search := cfg.SearchConfig()
	if cfg.MetricsPath != "" {
		m, err := metrics.NewSearchMetrics(reg)
		if err != nil {
			return err
		}
		search.Observer = m
	}

	model, res, err := optimizer.Train(ctx, samples, search, exporter)
	if err != nil {
		return err
	}

	if cfg.MetricsPath != "" {
		if err := metrics.WriteTextfile(cfg.MetricsPath, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.V(logging.DEBUG).Info("Wrote metrics", "path", cfg.MetricsPath)
	}

	printSummary(model, res, cfg.ModelPath)
	return nil
}

// newExporter returns the model file exporter, fanned out to MySQL when a DSN
// is configured. The returned func releases the database connection.
func newExporter(ctx context.Context, cfg *config.Config) (linreg.Exporter, func(), error) {
	file, err := export.NewFile(cfg.ModelPath, cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	if cfg.MySQLDSN == "" {
		return file, func() {}, nil
	}

	store, err := sqlstore.Open(cfg.MySQLDSN, sqlstore.Options{
		Table: cfg.MySQLTable,
		Now:   clock.NTP(ctx, cfg.NTPServer, 0),
	})
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	logr.FromContextOrDiscard(ctx).Info("Storing model in MySQL", "table", cfg.MySQLTable)
	return export.Multi(file, store), func() { store.Close() }, nil
}

func printSummary(m linreg.Model, res optimizer.Result, path string) {
	intercept, slope := m.Line()
	fmt.Printf("Evaluated %d candidates\n", res.Evaluated)
	fmt.Printf("Best learning rate:         %g\n", res.LearningRate)
	fmt.Printf("Best convergence threshold: %g\n", res.ConvergenceThreshold)
	fmt.Printf("Iterations:                 %d (converged: %t)\n", res.Iterations, res.Converged)
	fmt.Printf("Cost:                       %.4f\n", res.Cost)
	fmt.Printf("theta_0=%.6f theta_1=%.6f mean_km=%.6f std_km=%.6f\n", m.Theta0, m.Theta1, m.MeanKm, m.StdKm)
	fmt.Printf("price = %.4f %+.6f * km\n", intercept, slope)
	fmt.Printf("Model written to %s\n", path)
}
