package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travelagency/internal/domain/models"
	"travelagency/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF invoice per booking.
type DocsService struct {
	Company   string
	Currency  string
	Dir       string // archive directory; empty disables archiving
	RequestID string
	now       func() time.Time
}

func (s DocsService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return utils.NowUTC()
}

// GenerateInvoice renders the invoice PDF of a paid booking and archives a
// copy under Dir when set.
func (s DocsService) GenerateInvoice(b models.Booking, invoiceNo string) ([]byte, string, error) {
	pdf, filename, err := buildInvoicePDF(s.invoiceData(b, invoiceNo))
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%s invoice=%s", b.ID, invoiceNo))

	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			utils.LogEvent(s.RequestID, "docs", "archive_invoice", "mkdir failed: "+err.Error())
		} else if err := os.WriteFile(filepath.Join(s.Dir, filename), pdf, 0o644); err != nil {
			utils.LogEvent(s.RequestID, "docs", "archive_invoice", "write failed: "+err.Error())
		}
	}
	return pdf, filename, nil
}

type invoiceData struct {
	Company       string
	InvoiceNo     string
	IssuedAt      time.Time
	BookingID     string
	PackageName   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartDate     string
	EndDate       string
	Guests        int
	Total         float64
	Currency      string
	PaymentID     string
	PaymentMethod string
}

func (s DocsService) invoiceData(b models.Booking, invoiceNo string) invoiceData {
	currency := s.Currency
	if currency == "" {
		currency = "LKR"
	}
	return invoiceData{
		Company:       safe(s.Company, "Travel Agency"),
		InvoiceNo:     invoiceNo,
		IssuedAt:      s.clock(),
		BookingID:     b.ID,
		PackageName:   b.TourPackageName,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Guests:        b.Guests,
		Total:         b.TotalPrice,
		Currency:      currency,
		PaymentID:     b.PaymentID,
		PaymentMethod: b.PaymentMethod,
	}
}

func buildInvoicePDF(d invoiceData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+d.InvoiceNo, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, d.Company)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice   : "+d.InvoiceNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal      : "+utils.FormatDateTime(d.IssuedAt)+" UTC")
	pdf.Ln(7)
	pdf.Cell(0, 7, "Kode Booking : "+d.BookingID)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Nama   : %s", safe(d.CustomerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email  : %s", safe(d.CustomerEmail, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("No HP  : %s", safe(d.CustomerPhone, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Paket %s (%s s/d %s), %d tamu",
		safe(d.PackageName, "-"), safe(d.StartDate, "-"), safe(d.EndDate, "-"), d.Guests)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, fmt.Sprintf("Pembayaran: %s (%s)", safe(d.PaymentID, "-"), safe(d.PaymentMethod, "-")))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatAmount(d.Currency, d.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Status: LUNAS. Invoice ini dibuat otomatis setelah pembayaran terverifikasi.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s_%s.pdf", d.BookingID, utils.SafeFilenamePart(d.CustomerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
