// Package sqlstore keeps trained models in a MySQL table of key/value rows.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	linreg "github.com/abied-ch/ft-linear-regression"
)

// DefaultTable is the table used when Options.Table is empty.
const DefaultTable = "model_parameters"

// ErrInvalidTable is returned for a table name that is not a plain identifier.
var ErrInvalidTable = errors.New("sqlstore: invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures a Store.
type Options struct {
	Table string           // empty → DefaultTable
	Now   func() time.Time // nil → time.Now; stamps trained_at
}

// Store exports models to and imports them from a SQL table with one row
// per model parameter.
type Store struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// Open connects to MySQL with dsn and returns a Store over it.
// The caller owns the Store and must Close it.
func Open(dsn string, opts Options) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: parse dsn: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	s, err := New(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Store over an existing database handle.
func New(db *sql.DB, opts Options) (*Store, error) {
	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, table: table, now: now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the parameter table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s ("+
			"name VARCHAR(32) NOT NULL PRIMARY KEY, "+
			"value DOUBLE NOT NULL, "+
			"trained_at DATETIME NOT NULL)", s.table))
	if err != nil {
		return fmt.Errorf("sqlstore: create table %s: %w", s.table, err)
	}
	return nil
}

// Export upserts every model parameter in one transaction.
func (s *Store) Export(ctx context.Context, m linreg.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("INSERT INTO %s (name, value, trained_at) VALUES (?, ?, ?) "+
		"ON DUPLICATE KEY UPDATE value = VALUES(value), trained_at = VALUES(trained_at)", s.table)
	trainedAt := s.now().UTC().Truncate(time.Second)
	params := m.Params()
	for _, k := range linreg.ParamKeys {
		if _, err := tx.ExecContext(ctx, query, k, params[k], trainedAt); err != nil {
			return fmt.Errorf("sqlstore: write %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit: %w", err)
	}
	return nil
}

// Import reads the parameter rows back into a Model.
func (s *Store) Import(ctx context.Context) (linreg.Model, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT name, value FROM %s", s.table))
	if err != nil {
		return linreg.Model{}, fmt.Errorf("sqlstore: query: %w", err)
	}
	defer rows.Close()

	params := make(map[string]float64, len(linreg.ParamKeys))
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return linreg.Model{}, fmt.Errorf("sqlstore: scan: %w", err)
		}
		params[name] = value
	}
	if err := rows.Err(); err != nil {
		return linreg.Model{}, fmt.Errorf("sqlstore: rows: %w", err)
	}
	return linreg.ModelFromParams(params)
}
