package repositories

import (
	intdb "travelagency/internal/db"
	"travelagency/internal/domain/models"
)

// InvoiceTable is the ledger of generated invoices, one row per booking.
var InvoiceTable = Table[models.Invoice]{
	Name:     "invoices",
	Resource: "invoice",
	Columns:  []string{"id", "booking_id", "payment_id", "amount", "currency", "file_name", "created_at", "updated_at"},
	Scan: func(sc Scanner) (models.Invoice, error) {
		var inv models.Invoice
		if err := sc.Scan(&inv.ID, &inv.BookingID, &inv.PaymentID, &inv.Amount, &inv.Currency, &inv.FileName, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return models.Invoice{}, err
		}
		inv.CreatedAt = inv.CreatedAt.UTC()
		inv.UpdatedAt = inv.UpdatedAt.UTC()
		return inv, nil
	},
	Values: func(inv models.Invoice) []any {
		return []any{inv.ID, inv.BookingID, inv.PaymentID, inv.Amount, inv.Currency, inv.FileName, inv.CreatedAt.UTC(), inv.UpdatedAt.UTC()}
	},
	Schema: map[intdb.Dialect]string{
		intdb.MySQL: `
CREATE TABLE IF NOT EXISTS invoices (
	id VARCHAR(40) NOT NULL PRIMARY KEY,
	booking_id VARCHAR(32) NOT NULL,
	payment_id VARCHAR(100) NOT NULL DEFAULT '',
	amount DECIMAL(12,2) NOT NULL DEFAULT 0,
	currency VARCHAR(8) NOT NULL DEFAULT '',
	file_name VARCHAR(255) NOT NULL DEFAULT '',
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	KEY idx_invoices_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
		intdb.SQLite: `
CREATE TABLE IF NOT EXISTS invoices (
	id TEXT NOT NULL PRIMARY KEY,
	booking_id TEXT NOT NULL,
	payment_id TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`,
	},
}
