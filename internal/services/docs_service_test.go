package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"travelagency/internal/domain/models"
)

func paidBooking() models.Booking {
	b := sampleInput().Booking()
	b.ID = "B001"
	b.Status = models.BookingConfirmed
	b.PaymentStatus = models.PaymentPaid
	b.PaymentID = "320027150501"
	b.PaymentMethod = "VISA"
	return b
}

func TestDocsServiceGenerateInvoice(t *testing.T) {
	svc := DocsService{
		Company:  "Serendib Tours",
		Currency: "LKR",
		now:      func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) },
	}

	pdf, filename, err := svc.GenerateInvoice(paidBooking(), "INV-B001")
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("GenerateInvoice returned no pdf")
	}
	if filename != "INVOICE_B001_Nimal_Perera.pdf" {
		t.Fatalf("unexpected filename %s", filename)
	}
}

func TestDocsServiceArchivesInvoice(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "invoices")
	svc := DocsService{Dir: dir}

	_, filename, err := svc.GenerateInvoice(paidBooking(), "INV-B001")
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
		t.Fatalf("invoice not archived: %v", err)
	}
}
