package linreg

import "errors"

// Sentinel errors for the linreg package.
// Use errors.Is to check: errors.Is(err, linreg.ErrZeroVariance)
var (
	ErrInsufficientData = errors.New("linreg: at least two samples are required")
	ErrZeroVariance     = errors.New("linreg: mileage has zero variance")
	ErrInvalidSample    = errors.New("linreg: invalid sample")
	ErrInvalidModel     = errors.New("linreg: invalid model")
	ErrMissingParameter = errors.New("linreg: missing model parameter")
)
