package repositories

import (
	"context"
	"database/sql"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain/models"
	"travelagency/internal/utils"
)

type Migrator interface {
	Migrate(ctx context.Context) error
}

// Stores bundles one gateway per record type over the same pair of
// databases.
type Stores struct {
	Bookings  *Gateway[models.Booking]
	Invoices  *Gateway[models.Invoice]
	Users     *Gateway[models.User]
	Sequences SequenceRepository

	primary  []Migrator
	fallback []Migrator
}

// TableSet pairs a primary and a fallback connection with their dialects.
type TableSet struct {
	PrimaryConfigured bool
	Primary           *sql.DB
	PrimaryDialect    intdb.Dialect
	Fallback          *sql.DB
	FallbackDialect   intdb.Dialect
}

// NewStores wires MySQL as primary and SQLite as fallback.
func NewStores(primaryConfigured bool, primary, fallback *sql.DB) *Stores {
	return NewStoresFor(TableSet{
		PrimaryConfigured: primaryConfigured,
		Primary:           primary,
		PrimaryDialect:    intdb.MySQL,
		Fallback:          fallback,
		FallbackDialect:   intdb.SQLite,
	})
}

func NewStoresFor(ts TableSet) *Stores {
	s := &Stores{
		Sequences: SequenceRepository{DB: ts.Fallback, Dialect: ts.FallbackDialect},
	}
	s.Bookings = wire(s, ts, BookingTable)
	s.Invoices = wire(s, ts, InvoiceTable)
	s.Users = wire(s, ts, UserTable)
	s.fallback = append(s.fallback, s.Sequences)
	return s
}

func wire[T Record[T]](s *Stores, ts TableSet, table Table[T]) *Gateway[T] {
	p := NewSQLStore(ts.Primary, ts.PrimaryDialect, BackendPrimary, table)
	f := NewSQLStore(ts.Fallback, ts.FallbackDialect, BackendFallback, table)
	if ts.PrimaryConfigured {
		s.primary = append(s.primary, p)
	}
	s.fallback = append(s.fallback, f)
	return NewGateway[T](GatewayConfig{PrimaryConfigured: ts.PrimaryConfigured, Resource: table.Resource}, p, f)
}

// Migrate creates missing tables. Fallback failures are fatal; primary
// failures are logged because the primary may simply be unreachable.
func (s *Stores) Migrate(ctx context.Context) error {
	for _, m := range s.fallback {
		if err := m.Migrate(ctx); err != nil {
			return err
		}
	}
	for _, m := range s.primary {
		if err := m.Migrate(ctx); err != nil {
			utils.LogEvent("", "store", "migrate", "primary migrate failed: "+err.Error())
			return nil
		}
	}
	return nil
}
