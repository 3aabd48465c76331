package repositories

import (
	"database/sql"

	intdb "travelagency/internal/db"
	"travelagency/internal/domain/models"
)

// BookingTable maps models.Booking onto the bookings table of both stores.
var BookingTable = Table[models.Booking]{
	Name:     "bookings",
	Resource: "booking",
	Columns: []string{
		"id",
		"tour_package_id",
		"tour_package_name",
		"customer_name",
		"customer_email",
		"customer_phone",
		"start_date",
		"end_date",
		"guests",
		"total_price",
		"status",
		"payment_status",
		"payment_id",
		"payment_method",
		"special_requests",
		"created_at",
		"updated_at",
	},
	Scan:   scanBooking,
	Values: bookingValues,
	Schema: map[intdb.Dialect]string{
		intdb.MySQL: `
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(32) NOT NULL PRIMARY KEY,
	tour_package_id VARCHAR(64) NOT NULL DEFAULT '',
	tour_package_name VARCHAR(255) NOT NULL DEFAULT '',
	customer_name VARCHAR(255) NOT NULL DEFAULT '',
	customer_email VARCHAR(255) NOT NULL DEFAULT '',
	customer_phone VARCHAR(100) NOT NULL DEFAULT '',
	start_date VARCHAR(10) NOT NULL,
	end_date VARCHAR(10) NOT NULL,
	guests INT NOT NULL DEFAULT 1,
	total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	payment_id VARCHAR(100) NULL,
	payment_method VARCHAR(50) NULL,
	special_requests TEXT NULL,
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	KEY idx_bookings_email (customer_email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
		intdb.SQLite: `
CREATE TABLE IF NOT EXISTS bookings (
	id TEXT NOT NULL PRIMARY KEY,
	tour_package_id TEXT NOT NULL DEFAULT '',
	tour_package_name TEXT NOT NULL DEFAULT '',
	customer_name TEXT NOT NULL DEFAULT '',
	customer_email TEXT NOT NULL DEFAULT '',
	customer_phone TEXT NOT NULL DEFAULT '',
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	guests INTEGER NOT NULL DEFAULT 1,
	total_price REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	payment_status TEXT NOT NULL DEFAULT 'pending',
	payment_id TEXT,
	payment_method TEXT,
	special_requests TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings (customer_email);
`,
	},
}

func scanBooking(sc Scanner) (models.Booking, error) {
	var (
		b               models.Booking
		status, payment string
		paymentID, meth sql.NullString
		specialRequests sql.NullString
	)
	if err := sc.Scan(
		&b.ID,
		&b.TourPackageID,
		&b.TourPackageName,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.StartDate,
		&b.EndDate,
		&b.Guests,
		&b.TotalPrice,
		&status,
		&payment,
		&paymentID,
		&meth,
		&specialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.PaymentStatus = models.PaymentStatus(payment)
	b.PaymentID = paymentID.String
	b.PaymentMethod = meth.String
	b.SpecialRequests = specialRequests.String
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func bookingValues(b models.Booking) []any {
	return []any{
		b.ID,
		b.TourPackageID,
		b.TourPackageName,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.StartDate,
		b.EndDate,
		b.Guests,
		b.TotalPrice,
		string(b.Status),
		string(b.PaymentStatus),
		intdb.NullIfEmpty(b.PaymentID),
		intdb.NullIfEmpty(b.PaymentMethod),
		intdb.NullIfEmpty(b.SpecialRequests),
		b.CreatedAt.UTC(),
		b.UpdatedAt.UTC(),
	}
}
