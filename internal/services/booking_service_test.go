package services

import (
	"context"
	"errors"
	"testing"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
)

func TestCreateBookingDefaults(t *testing.T) {
	svc := newBookingService(fallbackOnly(t))

	b, backend, err := svc.Create(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if backend != repositories.BackendFallback {
		t.Fatalf("expected fallback, got %s", backend)
	}
	if b.Status != models.BookingPending || b.PaymentStatus != models.PaymentPending {
		t.Fatalf("unexpected initial statuses: %s/%s", b.Status, b.PaymentStatus)
	}
	if b.CreatedAt.IsZero() || !b.CreatedAt.Equal(b.UpdatedAt) {
		t.Fatalf("timestamps not set: %v %v", b.CreatedAt, b.UpdatedAt)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newBookingService(fallbackOnly(t))

	cases := []struct {
		field  string
		mutate func(*models.BookingInput)
	}{
		{"tourPackageId", func(in *models.BookingInput) { in.TourPackageID = " " }},
		{"customerName", func(in *models.BookingInput) { in.CustomerName = "" }},
		{"customerEmail", func(in *models.BookingInput) { in.CustomerEmail = "not-an-email" }},
		{"startDate", func(in *models.BookingInput) { in.StartDate = "10/04/2025" }},
		{"endDate", func(in *models.BookingInput) { in.EndDate = "2025-04-09" }},
		{"guests", func(in *models.BookingInput) { in.Guests = 0 }},
		{"totalPrice", func(in *models.BookingInput) { in.TotalPrice = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := sampleInput()
			tc.mutate(&in)
			_, _, err := svc.Create(context.Background(), in)
			var verr domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestUpdateBookingPatch(t *testing.T) {
	svc := newBookingService(fallbackOnly(t))
	ctx := context.Background()
	created, _, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	guests := 4
	updated, err := svc.Update(ctx, created.ID, models.BookingPatch{Guests: &guests})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Guests != 4 || updated.CustomerName != created.CustomerName {
		t.Fatalf("patch not merged: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt went backwards")
	}

	paid := models.PaymentPaid
	if _, err := svc.Update(ctx, created.ID, models.BookingPatch{PaymentStatus: &paid}); !domain.IsValidation(err) {
		t.Fatalf("paid without paymentId must be rejected, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, models.BookingPatch{}); !domain.IsValidation(err) {
		t.Fatalf("empty patch must be rejected, got %v", err)
	}
	if _, err := svc.Update(ctx, "B999", models.BookingPatch{Guests: &guests}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetBookingHidesForeignBooking(t *testing.T) {
	svc := newBookingService(fallbackOnly(t))
	ctx := context.Background()
	created, _, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	owner := domain.Caller{Role: domain.RoleCustomer, Email: "NIMAL@example.com"}
	if _, err := svc.Get(ctx, owner, created.ID); err != nil {
		t.Fatalf("owner get error: %v", err)
	}
	other := domain.Caller{Role: domain.RoleCustomer, Email: "someone@example.com"}
	if _, err := svc.Get(ctx, other, created.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for foreign booking, got %v", err)
	}

	list, err := svc.List(ctx, other)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v, %v", list, err)
	}
	list, err = svc.List(ctx, domain.Caller{Role: domain.RoleStaff})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected staff to see 1 booking, got %v, %v", list, err)
	}
}
