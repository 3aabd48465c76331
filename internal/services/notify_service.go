package services

import (
	"context"
	"fmt"
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

// InvoiceLedger records generated invoices so a repeated settlement does
// not count a second one.
type InvoiceLedger interface {
	Get(ctx context.Context, id string) (models.Invoice, repositories.Backend, error)
	Create(ctx context.Context, rec models.Invoice) (models.Invoice, repositories.Backend, error)
}

type InvoiceRenderer interface {
	GenerateInvoice(b models.Booking, invoiceNo string) ([]byte, string, error)
}

// NotifyResult summarizes what a settlement dispatched.
type NotifyResult struct {
	InvoiceCreated    bool
	InvoiceSent       bool
	ConfirmationsSent int
}

// Notifier runs the post-settlement side effects. Every step is
// best-effort: failures are logged and never returned.
type Notifier struct {
	Mailer         Mailer
	Docs           InvoiceRenderer
	Invoices       InvoiceLedger
	OperatorEmails []string
	Currency       string
	RequestID      string
}

// BookingSettled dispatches the invoice and confirmations for a booking
// that just became paid.
func (n Notifier) BookingSettled(ctx context.Context, requestID string, b models.Booking) NotifyResult {
	if requestID != "" {
		n.RequestID = requestID
	}
	var res NotifyResult
	res.InvoiceCreated, res.InvoiceSent = n.dispatchInvoice(ctx, b)
	res.ConfirmationsSent = n.dispatchConfirmations(ctx, b)
	utils.LogEventf(n.RequestID, "notify", "settled", "booking_id=%s invoice_new=%t invoice_sent=%t confirmations=%d",
		b.ID, res.InvoiceCreated, res.InvoiceSent, res.ConfirmationsSent)
	return res
}

func (n Notifier) dispatchInvoice(ctx context.Context, b models.Booking) (created, sent bool) {
	invoiceNo := models.InvoiceNumber(b.ID)

	if n.Invoices != nil {
		_, _, err := n.Invoices.Get(ctx, invoiceNo)
		if err == nil {
			utils.LogEvent(n.RequestID, "notify", "invoice", "invoice "+invoiceNo+" sudah ada, skip")
			return false, false
		}
		if !domain.IsNotFound(err) {
			utils.LogEvent(n.RequestID, "notify", "invoice", "ledger lookup failed: "+err.Error())
		}
	}

	if n.Docs == nil {
		return false, false
	}
	pdf, filename, err := n.Docs.GenerateInvoice(b, invoiceNo)
	if err != nil {
		utils.LogEvent(n.RequestID, "notify", "invoice", "generate failed: "+err.Error())
		return false, false
	}

	if n.Invoices != nil {
		_, _, err := n.Invoices.Create(ctx, models.Invoice{
			ID:        invoiceNo,
			BookingID: b.ID,
			PaymentID: b.PaymentID,
			Amount:    b.TotalPrice,
			Currency:  n.Currency,
			FileName:  filename,
		})
		if err != nil {
			utils.LogEvent(n.RequestID, "notify", "invoice", "ledger write failed: "+err.Error())
		} else {
			created = true
		}
	}

	if n.Mailer == nil || b.CustomerEmail == "" {
		return created, false
	}
	err = n.Mailer.Send(ctx, Mail{
		To:          []string{b.CustomerEmail},
		Subject:     fmt.Sprintf("Invoice %s untuk booking %s", invoiceNo, b.ID),
		Body:        fmt.Sprintf("Halo %s,\n\nTerlampir invoice pembayaran booking %s.\n\nTerima kasih.", safe(b.CustomerName, "pelanggan"), b.ID),
		Attachments: []Attachment{{Name: filename, Data: pdf}},
	})
	if err != nil {
		utils.LogEvent(n.RequestID, "notify", "invoice", "send failed: "+err.Error())
		return created, false
	}
	return created, true
}

func (n Notifier) dispatchConfirmations(ctx context.Context, b models.Booking) int {
	if n.Mailer == nil {
		return 0
	}
	body := confirmationBody(b, n.Currency)
	subject := fmt.Sprintf("Booking %s dikonfirmasi", b.ID)

	// customer and operators get separate messages
	recipients := [][]string{}
	if b.CustomerEmail != "" {
		recipients = append(recipients, []string{b.CustomerEmail})
	}
	if len(n.OperatorEmails) > 0 {
		recipients = append(recipients, n.OperatorEmails)
	}

	sent := 0
	for _, to := range recipients {
		m := Mail{To: to, Subject: subject, Body: body}
		if err := n.Mailer.Send(ctx, m); err != nil {
			utils.LogEvent(n.RequestID, "notify", "confirmation", "send failed: "+err.Error())
			continue
		}
		sent++
	}
	return sent
}

func confirmationBody(b models.Booking, currency string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking %s telah dikonfirmasi.\n\n", b.ID)
	fmt.Fprintf(&sb, "Paket     : %s\n", safe(b.TourPackageName, b.TourPackageID))
	fmt.Fprintf(&sb, "Pelanggan : %s <%s>\n", safe(b.CustomerName, "-"), b.CustomerEmail)
	fmt.Fprintf(&sb, "Tanggal   : %s s/d %s\n", b.StartDate, b.EndDate)
	fmt.Fprintf(&sb, "Tamu      : %d\n", b.Guests)
	fmt.Fprintf(&sb, "Total     : %s\n", utils.FormatAmount(currency, b.TotalPrice))
	fmt.Fprintf(&sb, "Payment   : %s (%s)\n", safe(b.PaymentID, "-"), safe(b.PaymentMethod, "-"))
	fmt.Fprintf(&sb, "Dibayar   : %s UTC\n", utils.FormatDateTime(b.UpdatedAt))
	return sb.String()
}
