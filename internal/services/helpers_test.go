package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"

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

func closedSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db := openSQLite(t, "down.db")
	db.Close()
	return db
}

func newStores(t *testing.T, primaryConfigured bool, primary, fallback *sql.DB) *repositories.Stores {
	t.Helper()
	s := repositories.NewStoresFor(repositories.TableSet{
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

func fallbackOnly(t *testing.T) *repositories.Stores {
	t.Helper()
	return newStores(t, false, nil, openSQLite(t, "fallback.db"))
}

func newBookingService(stores *repositories.Stores) BookingService {
	return BookingService{
		Bookings:  stores.Bookings,
		Allocator: NewBookingAllocator(stores.Bookings, stores.Sequences),
	}
}

func sampleInput() models.BookingInput {
	return models.BookingInput{
		TourPackageID:   "PKG-7",
		TourPackageName: "Ella Highlands",
		CustomerName:    "Nimal Perera",
		CustomerEmail:   "nimal@example.com",
		CustomerPhone:   "+94770000000",
		StartDate:       "2025-04-10",
		EndDate:         "2025-04-12",
		Guests:          2,
		TotalPrice:      1200,
	}
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []Mail
}

func (m *recordingMailer) Send(_ context.Context, mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) withAttachments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if len(s.Attachments) > 0 {
			n++
		}
	}
	return n
}
