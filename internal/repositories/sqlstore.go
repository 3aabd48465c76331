package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table maps a record type onto a SQL table. Columns[0] is the key and
// Values must return arguments in Columns order.
type Table[T any] struct {
	Name     string
	Resource string
	Columns  []string
	Scan     func(sc Scanner) (T, error)
	Values   func(rec T) []any
	Schema   map[intdb.Dialect]string
}

func (t Table[T]) key() string { return t.Columns[0] }

func (t Table[T]) columnList() string { return strings.Join(t.Columns, ", ") }

// SQLStore is the database/sql implementation of Store shared by the
// MySQL primary and the SQLite fallback.
type SQLStore[T Record[T]] struct {
	DB      *sql.DB
	Dialect intdb.Dialect
	Table   Table[T]
	backend Backend
}

func NewSQLStore[T Record[T]](db *sql.DB, dialect intdb.Dialect, backend Backend, table Table[T]) *SQLStore[T] {
	return &SQLStore[T]{DB: db, Dialect: dialect, Table: table, backend: backend}
}

func (s *SQLStore[T]) Backend() Backend { return s.backend }

func (s *SQLStore[T]) ready() error {
	if s == nil || s.DB == nil {
		return domain.NotConfiguredError{Backend: string(s.backendName())}
	}
	return nil
}

func (s *SQLStore[T]) backendName() Backend {
	if s == nil {
		return ""
	}
	return s.backend
}

// Migrate creates the table when the catalog does not have it yet.
func (s *SQLStore[T]) Migrate(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if intdb.HasTable(ctx, s.DB, s.Dialect, s.Table.Name) {
		return nil
	}
	ddl, ok := s.Table.Schema[s.Dialect]
	if !ok {
		return fmt.Errorf("schema %s untuk dialect %s tidak tersedia", s.Table.Name, s.Dialect)
	}
	_, err := s.DB.ExecContext(ctx, ddl)
	return err
}

func (s *SQLStore[T]) Insert(ctx context.Context, rec T) error {
	if err := s.ready(); err != nil {
		return err
	}
	query := `INSERT INTO ` + s.Table.Name + ` (` + s.Table.columnList() + `) VALUES (` + intdb.Placeholders(len(s.Table.Columns)) + `)`
	_, err := s.DB.ExecContext(ctx, query, s.Table.Values(rec)...)
	return err
}

func (s *SQLStore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := s.ready(); err != nil {
		return zero, err
	}
	query := `SELECT ` + s.Table.columnList() + ` FROM ` + s.Table.Name + ` WHERE ` + s.Table.key() + `=? LIMIT 1`
	rec, err := s.Table.Scan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.NotFoundError{Resource: s.Table.Resource, ID: id, Err: err}
		}
		return zero, err
	}
	return rec, nil
}

func (s *SQLStore[T]) List(ctx context.Context) ([]T, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT ` + s.Table.columnList() + ` FROM ` + s.Table.Name + ` ORDER BY ` + s.Table.key()
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := s.Table.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Replace overwrites every non-key column of an existing row.
func (s *SQLStore[T]) Replace(ctx context.Context, rec T) error {
	if err := s.ready(); err != nil {
		return err
	}
	sets := make([]string, 0, len(s.Table.Columns)-1)
	for _, col := range s.Table.Columns[1:] {
		sets = append(sets, col+"=?")
	}
	values := s.Table.Values(rec)
	args := append(append([]any{}, values[1:]...), values[0])

	query := `UPDATE ` + s.Table.Name + ` SET ` + strings.Join(sets, ",") + ` WHERE ` + s.Table.key() + `=?`
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: s.Table.Resource, ID: rec.RecordID()}
	}
	return nil
}

func (s *SQLStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM `+s.Table.Name+` WHERE `+s.Table.key()+`=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: s.Table.Resource, ID: id}
	}
	return nil
}

func (s *SQLStore[T]) IDs(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+s.Table.key()+` FROM `+s.Table.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
