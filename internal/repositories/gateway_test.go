package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain"
	"travelagency/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func openSQLite(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// closedSQLite is a primary that fails every call.
func closedSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db := openSQLite(t, "down.db")
	db.Close()
	return db
}

func newTestStores(t *testing.T, primaryConfigured bool, primary, fallback *sql.DB) *Stores {
	t.Helper()
	s := NewStoresFor(TableSet{
		PrimaryConfigured: primaryConfigured,
		Primary:           primary,
		PrimaryDialect:    intdb.SQLite,
		Fallback:          fallback,
		FallbackDialect:   intdb.SQLite,
	})
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func assertSameBooking(t *testing.T, want, got models.Booking) {
	t.Helper()
	if !want.CreatedAt.Equal(got.CreatedAt) || !want.UpdatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("timestamps differ: want %v/%v got %v/%v", want.CreatedAt, want.UpdatedAt, got.CreatedAt, got.UpdatedAt)
	}
	want.CreatedAt, want.UpdatedAt = time.Time{}, time.Time{}
	got.CreatedAt, got.UpdatedAt = time.Time{}, time.Time{}
	if want != got {
		t.Fatalf("booking differs:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestGatewayCreateFallsBackWhenPrimaryDown(t *testing.T) {
	stores := newTestStores(t, true, closedSQLite(t), openSQLite(t, "fallback.db"))
	ctx := context.Background()

	created, backend, err := stores.Bookings.Create(ctx, sampleBooking("B001"))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if backend != BackendFallback {
		t.Fatalf("expected fallback backend, got %s", backend)
	}

	got, backend, err := stores.Bookings.Get(ctx, "B001")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if backend != BackendFallback {
		t.Fatalf("expected get from fallback, got %s", backend)
	}
	assertSameBooking(t, created, got)
}

func TestGatewayUsesPrimaryWhenUp(t *testing.T) {
	primary := openSQLite(t, "primary.db")
	fallback := openSQLite(t, "fallback.db")
	stores := newTestStores(t, true, primary, fallback)
	ctx := context.Background()

	created, backend, err := stores.Bookings.Create(ctx, sampleBooking("B001"))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if backend != BackendPrimary {
		t.Fatalf("expected primary backend, got %s", backend)
	}
	got, _, err := stores.Bookings.Get(ctx, "B001")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	assertSameBooking(t, created, got)

	var n int
	if err := fallback.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		t.Fatalf("count fallback: %v", err)
	}
	if n != 0 {
		t.Fatalf("fallback must stay empty, has %d rows", n)
	}
}

func TestGatewayPrimaryNotConfigured(t *testing.T) {
	stores := newTestStores(t, false, nil, openSQLite(t, "fallback.db"))

	_, backend, err := stores.Bookings.Create(context.Background(), sampleBooking("B001"))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if backend != BackendFallback {
		t.Fatalf("expected fallback backend, got %s", backend)
	}
}

func TestGatewayUpdateStaysInHoldingStore(t *testing.T) {
	ctx := context.Background()
	fallback := openSQLite(t, "fallback.db")

	// written during an outage
	outage := newTestStores(t, true, closedSQLite(t), fallback)
	if _, _, err := outage.Bookings.Create(ctx, sampleBooking("B001")); err != nil {
		t.Fatalf("create error: %v", err)
	}

	// primary is back
	primary := openSQLite(t, "primary.db")
	stores := newTestStores(t, true, primary, fallback)
	later := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	stores.Bookings.WithClock(fixedClock(later))

	before, after, backend, err := stores.Bookings.Update(ctx, "B001", func(b *models.Booking) error {
		b.Status = models.BookingConfirmed
		return nil
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if backend != BackendFallback {
		t.Fatalf("expected update in fallback, got %s", backend)
	}
	if before.Status != models.BookingPending || after.Status != models.BookingConfirmed {
		t.Fatalf("unexpected transition %s -> %s", before.Status, after.Status)
	}
	if !after.UpdatedAt.Equal(later) || !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("timestamps not bumped correctly: %+v", after)
	}

	var n int
	if err := primary.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		t.Fatalf("count primary: %v", err)
	}
	if n != 0 {
		t.Fatalf("record migrated to primary: %d rows", n)
	}
}

func TestGatewayUpdateMutateErrorAborts(t *testing.T) {
	stores := newTestStores(t, false, nil, openSQLite(t, "fallback.db"))
	ctx := context.Background()
	if _, _, err := stores.Bookings.Create(ctx, sampleBooking("B001")); err != nil {
		t.Fatalf("create error: %v", err)
	}

	boom := errors.New("rejected")
	_, _, _, err := stores.Bookings.Update(ctx, "B001", func(b *models.Booking) error {
		b.Guests = 99
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutate error, got %v", err)
	}
	got, _, _ := stores.Bookings.Get(ctx, "B001")
	if got.Guests != 2 {
		t.Fatalf("booking written despite mutate error: %+v", got)
	}
}

func TestGatewayDeleteReturnsRecord(t *testing.T) {
	stores := newTestStores(t, false, nil, openSQLite(t, "fallback.db"))
	ctx := context.Background()
	created, _, err := stores.Bookings.Create(ctx, sampleBooking("B001"))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	removed, _, err := stores.Bookings.Delete(ctx, "B001")
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	assertSameBooking(t, created, removed)

	if _, _, err := stores.Bookings.Get(ctx, "B001"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, _, err := stores.Bookings.Delete(ctx, "B001"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestGatewayGetMissingIsNotFound(t *testing.T) {
	stores := newTestStores(t, true, closedSQLite(t), openSQLite(t, "fallback.db"))

	_, _, err := stores.Bookings.Get(context.Background(), "B404")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGatewayBothDownUnavailable(t *testing.T) {
	stores := NewStoresFor(TableSet{
		PrimaryConfigured: true,
		Primary:           closedSQLite(t),
		PrimaryDialect:    intdb.SQLite,
		Fallback:          closedSQLite(t),
		FallbackDialect:   intdb.SQLite,
	})
	ctx := context.Background()

	if _, _, err := stores.Bookings.Create(ctx, sampleBooking("B001")); !domain.IsUnavailable(err) {
		t.Fatalf("create: expected unavailable, got %v", err)
	}
	if _, _, err := stores.Bookings.Get(ctx, "B001"); !domain.IsUnavailable(err) {
		t.Fatalf("get: expected unavailable, got %v", err)
	}
	if _, _, err := stores.Bookings.List(ctx); !domain.IsUnavailable(err) {
		t.Fatalf("list: expected unavailable, got %v", err)
	}
	_, _, _, err := stores.Bookings.Update(ctx, "B001", nil)
	if !domain.IsUnavailable(err) {
		t.Fatalf("update: expected unavailable, got %v", err)
	}
}

func TestGatewayListFallsBack(t *testing.T) {
	stores := newTestStores(t, true, closedSQLite(t), openSQLite(t, "fallback.db"))
	ctx := context.Background()
	for _, id := range []string{"B001", "B002"} {
		if _, _, err := stores.Bookings.Create(ctx, sampleBooking(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	list, backend, err := stores.Bookings.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if backend != BackendFallback || len(list) != 2 || list[0].ID != "B001" {
		t.Fatalf("unexpected list from %s: %+v", backend, list)
	}
}

func TestSequenceNeverLowers(t *testing.T) {
	fallback := openSQLite(t, "fallback.db")
	stores := newTestStores(t, false, nil, fallback)
	ctx := context.Background()

	last, err := stores.Sequences.Last(ctx, "B")
	if err != nil || last != 0 {
		t.Fatalf("expected empty sequence, got %d, %v", last, err)
	}
	for _, v := range []int{3, 7, 5} {
		if err := stores.Sequences.Advance(ctx, "B", v); err != nil {
			t.Fatalf("advance %d: %v", v, err)
		}
	}
	last, err = stores.Sequences.Last(ctx, "B")
	if err != nil || last != 7 {
		t.Fatalf("expected 7, got %d, %v", last, err)
	}
	if other, _ := stores.Sequences.Last(ctx, "U"); other != 0 {
		t.Fatalf("prefixes must be independent, got %d", other)
	}
}

func TestSequenceMySQLUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := SequenceRepository{DB: db, Dialect: intdb.MySQL}

	mock.ExpectExec("ON DUPLICATE KEY UPDATE last_value = GREATEST").WithArgs("B", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Advance(context.Background(), "B", 4); err != nil {
		t.Fatalf("advance error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
