package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type failingMailer struct{ calls int }

func (m *failingMailer) Send(context.Context, Mail) error {
	m.calls++
	return errors.New("smtp down")
}

func TestNotifierSeparatesCustomerAndOperators(t *testing.T) {
	mailer := &recordingMailer{}
	n := Notifier{Mailer: mailer, OperatorEmails: []string{"ops@example.com", "desk@example.com"}, Currency: "LKR"}

	res := n.BookingSettled(context.Background(), "req-1", paidBooking())
	if res.ConfirmationsSent != 2 || res.InvoiceCreated {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(mailer.sent))
	}
	if got := mailer.sent[0].To; len(got) != 1 || got[0] != "nimal@example.com" {
		t.Fatalf("customer mail to %v", got)
	}
	if got := mailer.sent[1].To; len(got) != 2 {
		t.Fatalf("operator mail to %v", got)
	}
	if !strings.Contains(mailer.sent[0].Body, "LKR 1,200.00") {
		t.Fatalf("confirmation body missing total:\n%s", mailer.sent[0].Body)
	}
}

func TestNotifierSwallowsMailFailures(t *testing.T) {
	mailer := &failingMailer{}
	stores := fallbackOnly(t)
	n := Notifier{Mailer: mailer, Docs: DocsService{}, Invoices: stores.Invoices, OperatorEmails: []string{"ops@example.com"}}

	res := n.BookingSettled(context.Background(), "", paidBooking())
	if !res.InvoiceCreated || res.InvoiceSent || res.ConfirmationsSent != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if mailer.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", mailer.calls)
	}
}
