// Package export persists trained linreg models as key/value documents.
//
// The file formats write the four model fields at fixed keys (theta_0,
// theta_1, mean_km, std_km) in that order, so exporting the same model twice
// produces byte-identical files.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	linreg "github.com/abied-ch/ft-linear-regression"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for a format other than json or yaml.
var ErrUnknownFormat = errors.New("export: unknown model format")

// Store both exports and imports a model.
type Store interface {
	linreg.Exporter
	linreg.Importer
}

// codec encodes a model document.
type codec interface {
	marshal(m linreg.Model) ([]byte, error)
	unmarshal(data []byte, m *linreg.Model) error
}

// File is a model document on disk.
type File struct {
	path  string
	codec codec
}

var _ Store = (*File)(nil)

// NewFile returns a File for path in the given format. An empty format is
// inferred from the extension (.yaml and .yml mean YAML, anything else JSON).
func NewFile(path, format string) (*File, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	var c codec
	switch strings.ToLower(format) {
	case FormatJSON:
		c = jsonCodec{}
	case FormatYAML, "yml":
		c = yamlCodec{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &File{path: path, codec: c}, nil
}

// FormatFromPath infers the model format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Path returns the document location.
func (f *File) Path() string { return f.path }

// Export validates m and replaces the document atomically.
func (f *File) Export(_ context.Context, m linreg.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := f.codec.marshal(m)
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", f.path, err)
	}
	return writeFileAtomic(f.path, data, 0o644)
}

// Import reads and validates the document.
func (f *File) Import(_ context.Context) (linreg.Model, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return linreg.Model{}, err
	}
	var m linreg.Model
	if err := f.codec.unmarshal(data, &m); err != nil {
		return linreg.Model{}, fmt.Errorf("export: decode %s: %w", f.path, err)
	}
	if err := m.Validate(); err != nil {
		return linreg.Model{}, fmt.Errorf("export: %s: %w", f.path, err)
	}
	return m, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never see a partial document.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Multi exports to every exporter in order and stops at the first error.
func Multi(exporters ...linreg.Exporter) linreg.Exporter {
	return multi(exporters)
}

type multi []linreg.Exporter

func (m multi) Export(ctx context.Context, model linreg.Model) error {
	for _, e := range m {
		if err := e.Export(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
