package models

import "time"

// Invoice is the ledger entry written once per settled booking.
type Invoice struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	PaymentID string    `json:"paymentId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceNumber derives the ledger key for a booking.
func InvoiceNumber(bookingID string) string {
	return "INV-" + bookingID
}

func (i Invoice) RecordID() string { return i.ID }

func (i Invoice) Touched(now time.Time) Invoice {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	return i
}
