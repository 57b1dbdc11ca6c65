package logging

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V().
const (
	DEBUG = 1
	TRACE = 2
)

// NewLogger builds a zap-backed logr.Logger that prints messages up to the
// given verbosity. Development mode switches to the human readable console
// encoder.
func NewLogger(verbosity int, development bool) (logr.Logger, error) {
	if verbosity < 0 {
		return logr.Discard(), fmt.Errorf("logging: negative verbosity %d", verbosity)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1 * verbosity))

	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("logging: build zap logger: %w", err)
	}
	return zapr.NewLogger(z), nil
}

// IntoContext stores logger in ctx for logr.FromContextOrDiscard.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}
