package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain"
)

// SequenceRepository keeps the highest number ever allocated per reference
// prefix, so a deleted record's id is not handed out again.
type SequenceRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

var sequenceSchema = map[intdb.Dialect]string{
	intdb.MySQL: `
CREATE TABLE IF NOT EXISTS reference_sequences (
	name VARCHAR(32) NOT NULL PRIMARY KEY,
	last_value BIGINT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`,
	intdb.SQLite: `
CREATE TABLE IF NOT EXISTS reference_sequences (
	name TEXT NOT NULL PRIMARY KEY,
	last_value INTEGER NOT NULL DEFAULT 0
);
`,
}

func (r SequenceRepository) Migrate(ctx context.Context) error {
	if r.DB == nil {
		return domain.NotConfiguredError{Backend: "sequence"}
	}
	if intdb.HasTable(ctx, r.DB, r.Dialect, "reference_sequences") {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, sequenceSchema[r.Dialect])
	return err
}

// Last returns the recorded high-water mark, 0 when none exists.
func (r SequenceRepository) Last(ctx context.Context, name string) (int, error) {
	if r.DB == nil {
		return 0, domain.NotConfiguredError{Backend: "sequence"}
	}
	var v int
	err := r.DB.QueryRowContext(ctx, `SELECT last_value FROM reference_sequences WHERE name=? LIMIT 1`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

// Advance raises the mark to value; it never lowers it.
func (r SequenceRepository) Advance(ctx context.Context, name string, value int) error {
	if r.DB == nil {
		return domain.NotConfiguredError{Backend: "sequence"}
	}
	stmt := `INSERT INTO reference_sequences (name, last_value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_value = MAX(last_value, excluded.last_value)`
	if r.Dialect == intdb.MySQL {
		stmt = `INSERT INTO reference_sequences (name, last_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE last_value = GREATEST(last_value, VALUES(last_value))`
	}
	_, err := r.DB.ExecContext(ctx, stmt, name, value)
	return err
}
