// Package dbtest provides an in-memory database.DB that records statements
// and replays scripted result sets.
package dbtest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"jobad-insights/internal/database"
)

var errNoRows = sql.ErrNoRows

// Call is one recorded statement.
type Call struct {
	Query string
	Args  []any
}

// Result scripts the answer to statements containing Match.
type Result struct {
	Match string
	Rows  [][]any
	Err   error
}

// DB records Exec, Query and CopyFrom calls. Query and QueryRow answer with
// the first Result whose Match is a substring of the query.
type DB struct {
	mu sync.Mutex

	Results []Result
	ExecErr map[string]error

	Execs      []Call
	Queries    []Call
	Copies     map[string][][]any
	Committed  int
	RolledBack int
}

var (
	_ database.DB     = (*DB)(nil)
	_ database.Copier = (*DB)(nil)
)

func New(results ...Result) *DB {
	return &DB{Results: results, Copies: map[string][][]any{}}
}

func (d *DB) Ping(context.Context) error { return nil }
func (d *DB) Close() error               { return nil }
func (d *DB) SQLDB() *sql.DB             { return nil }

func (d *DB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Execs = append(d.Execs, Call{Query: query, Args: args})
	for match, err := range d.ExecErr {
		if strings.Contains(query, match) {
			return 0, err
		}
	}
	return 1, nil
}

func (d *DB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Queries = append(d.Queries, Call{Query: query, Args: args})
	for _, r := range d.Results {
		if strings.Contains(query, r.Match) {
			if r.Err != nil {
				return nil, r.Err
			}
			return &Rows{rows: r.Rows, pos: -1}, nil
		}
	}
	return &Rows{pos: -1}, nil
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return row{err: err}
	}
	r := rows.(*Rows)
	if len(r.rows) == 0 {
		return row{err: errNoRows}
	}
	return row{vals: r.rows[0]}
}

func (d *DB) Begin(context.Context) (database.Tx, error) {
	return &Tx{db: d}, nil
}

func (d *DB) CopyFrom(_ context.Context, table string, _ []string, rows [][]any) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Copies[table] = append(d.Copies[table], rows...)
	return int64(len(rows)), nil
}

// ExecsMatching returns the recorded Exec calls containing substr.
func (d *DB) ExecsMatching(substr string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.Execs {
		if strings.Contains(c.Query, substr) {
			out = append(out, c)
		}
	}
	return out
}

// Tx forwards to its DB and counts commits and rollbacks.
type Tx struct {
	db   *DB
	done bool
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *Tx) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return t.db.CopyFrom(ctx, table, columns, rows)
}

func (t *Tx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.db.mu.Lock()
	t.db.Committed++
	t.db.mu.Unlock()
	return nil
}

func (t *Tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.db.mu.Lock()
	t.db.RolledBack++
	t.db.mu.Unlock()
	return nil
}

// Rows iterates a scripted result set.
type Rows struct {
	rows [][]any
	pos  int
}

func (r *Rows) Close()     {}
func (r *Rows) Err() error { return nil }

func (r *Rows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.rows) {
		return errNoRows
	}
	return assign(r.rows[r.pos], dest)
}

type row struct {
	vals []any
	err  error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

// assign copies vals into dest pointers. A nil value leaves a pointer
// destination nil.
func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(vals), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		target := dv.Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		case v.Type().ConvertibleTo(target.Type()) && v.Kind() != reflect.String:
			target.Set(v.Convert(target.Type()))
		default:
			return fmt.Errorf("scan: cannot assign %T to %s", vals[i], target.Type())
		}
	}
	return nil
}
