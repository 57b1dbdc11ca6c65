package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeDB is an in-memory key/value table behind a database/sql driver, so the
// store can be tested without a MySQL server.
type fakeDB struct {
	mu        sync.Mutex
	rows      map[string]float64
	stamps    map[string]time.Time
	queries   []string
	failOn    string
	commits   int
	rollbacks int
}

var fakes sync.Map

type fakeDriver struct{}

func init() {
	sql.Register("sqlstore-fake", fakeDriver{})
}

func (fakeDriver) Open(name string) (driver.Conn, error) {
	v, ok := fakes.Load(name)
	if !ok {
		return nil, errors.New("fake: unknown database " + name)
	}
	return &fakeConn{db: v.(*fakeDB)}, nil
}

func openFake(t *testing.T) (*sql.DB, *fakeDB) {
	t.Helper()
	fdb := &fakeDB{rows: map[string]float64{}, stamps: map[string]time.Time{}}
	fakes.Store(t.Name(), fdb)
	db, err := sql.Open("sqlstore-fake", t.Name())
	if err != nil {
		t.Fatalf("open fake: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		fakes.Delete(t.Name())
	})
	return db, fdb
}

type fakeConn struct {
	db      *fakeDB
	pending map[string]float64
	stamps  map[string]time.Time
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("fake: prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	c.pending = map[string]float64{}
	c.stamps = map[string]time.Time{}
	return c, nil
}

func (c *fakeConn) Commit() error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for k, v := range c.pending {
		c.db.rows[k] = v
		c.db.stamps[k] = c.stamps[k]
	}
	c.db.commits++
	c.pending = nil
	return nil
}

func (c *fakeConn) Rollback() error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.rollbacks++
	c.pending = nil
	return nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.queries = append(c.db.queries, query)

	if !strings.HasPrefix(query, "INSERT") {
		return driver.RowsAffected(0), nil
	}
	name := args[0].Value.(string)
	if name == c.db.failOn {
		return nil, errors.New("fake: write failed")
	}
	value := args[1].Value.(float64)
	stamp := args[2].Value.(time.Time)
	if c.pending != nil {
		c.pending[name] = value
		c.stamps[name] = stamp
	} else {
		c.db.rows[name] = value
		c.db.stamps[name] = stamp
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.queries = append(c.db.queries, query)

	names := make([]string, 0, len(c.db.rows))
	for k := range c.db.rows {
		names = append(names, k)
	}
	sort.Strings(names)
	rows := &fakeRows{}
	for _, k := range names {
		rows.names = append(rows.names, k)
		rows.values = append(rows.values, c.db.rows[k])
	}
	return rows, nil
}

type fakeRows struct {
	names  []string
	values []float64
	i      int
}

func (r *fakeRows) Columns() []string { return []string{"name", "value"} }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.names) {
		return io.EOF
	}
	dest[0] = r.names[r.i]
	dest[1] = r.values[r.i]
	r.i++
	return nil
}
