// Package dataset reads training samples from CSV files with km and price
// columns.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	linreg "github.com/abied-ch/ft-linear-regression"
	"github.com/abied-ch/ft-linear-regression/internal/logging"
)

// Column names looked up in the CSV header.
const (
	ColumnKm    = "km"
	ColumnPrice = "price"
)

var (
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("dataset: empty input")

	// ErrMissingColumn is returned when the header lacks km or price.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrMalformedRow is returned for a row whose km or price is not a number.
	ErrMalformedRow = errors.New("dataset: malformed row")
)

type record struct {
	line   int
	fields []string
}

// LoadFile opens path and loads it with Load.
func LoadFile(ctx context.Context, path string) ([]linreg.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logr.FromContextOrDiscard(ctx).Info("Loaded dataset", "path", path, "samples", len(samples))
	return samples, nil
}

// Load reads a CSV document whose header names a km and a price column, in
// any order. Other columns are ignored. Every row must hold finite,
// non-negative numbers in both columns.
func Load(ctx context.Context, r io.Reader) ([]linreg.Sample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}
	kmIdx, priceIdx, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	records := make(chan record, 128)

	g.Go(func() error {
		defer close(records)
		return readRecords(ctx, reader, records)
	})

	var result []linreg.Sample
	g.Go(func() error {
		samples, err := parseRecords(ctx, records, kmIdx, priceIdx)
		if err != nil {
			return err
		}
		result = samples
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func locateColumns(header []string) (kmIdx, priceIdx int, err error) {
	kmIdx, priceIdx = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnKm:
			kmIdx = i
		case ColumnPrice:
			priceIdx = i
		}
	}
	if kmIdx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnKm)
	}
	if priceIdx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnPrice)
	}
	return kmIdx, priceIdx, nil
}

func readRecords(ctx context.Context, reader *csv.Reader, out chan<- record) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := reader.FieldPos(0)
		select {
		case out <- record{line: line, fields: fields}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func parseRecords(ctx context.Context, in <-chan record, kmIdx, priceIdx int) ([]linreg.Sample, error) {
	logger := logr.FromContextOrDiscard(ctx)
	var result []linreg.Sample
	for rec := range in {
		km, err := parseField(rec, kmIdx, ColumnKm)
		if err != nil {
			return nil, err
		}
		price, err := parseField(rec, priceIdx, ColumnPrice)
		if err != nil {
			return nil, err
		}
		s := linreg.Sample{Mileage: km, Price: price}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.line, err)
		}
		logger.V(logging.TRACE).Info("Parsed sample", "line", rec.line, "km", km, "price", price)
		result = append(result, s)
	}
	return result, nil
}

func parseField(rec record, idx int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(rec.fields[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d column %s: %q", ErrMalformedRow, rec.line, column, rec.fields[idx])
	}
	return v, nil
}
