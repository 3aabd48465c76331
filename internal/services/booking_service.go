package services

import (
	"context"
	"fmt"
	"net/mail"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

// BookingStore is the persistence gateway contract for bookings.
type BookingStore interface {
	Create(ctx context.Context, rec models.Booking) (models.Booking, repositories.Backend, error)
	Get(ctx context.Context, id string) (models.Booking, repositories.Backend, error)
	List(ctx context.Context) ([]models.Booking, repositories.Backend, error)
	Update(ctx context.Context, id string, mutate func(*models.Booking) error) (models.Booking, models.Booking, repositories.Backend, error)
	Delete(ctx context.Context, id string) (models.Booking, repositories.Backend, error)
}

// Allocator hands out the next booking reference.
type Allocator interface {
	Next(ctx context.Context) string
}

type BookingService struct {
	Bookings  BookingStore
	Allocator Allocator
	RequestID string
}

// Create validates the public booking payload, allocates a reference and
// stores the pending booking in whichever backend accepts it.
func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, repositories.Backend, error) {
	b := in.Booking()
	if err := ValidateBooking(b); err != nil {
		return models.Booking{}, "", err
	}
	b.ID = s.Allocator.Next(ctx)

	stored, backend, err := s.Bookings.Create(ctx, b)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "create", "failed: "+err.Error())
		return models.Booking{}, "", err
	}
	utils.LogEventf(s.RequestID, "booking", "create", "id=%s backend=%s", stored.ID, backend)
	return stored, backend, nil
}

// Get hides bookings the caller may not see behind NotFound.
func (s BookingService) Get(ctx context.Context, caller domain.Caller, id string) (models.Booking, error) {
	b, _, err := s.Bookings.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if !CanView(caller, b) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id}
	}
	return b, nil
}

func (s BookingService) List(ctx context.Context, caller domain.Caller) ([]models.Booking, error) {
	all, backend, err := s.Bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := FilterVisible(caller, all)
	utils.LogEventf(s.RequestID, "booking", "list", "backend=%s total=%d visible=%d role=%s", backend, len(all), len(visible), caller.Role)
	return visible, nil
}

// Update merges patch into the stored booking and re-validates the result.
func (s BookingService) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, error) {
	if patch.IsEmpty() {
		return models.Booking{}, domain.ValidationError{Field: "body", Msg: "tidak ada field yang diubah"}
	}
	_, after, backend, err := s.Bookings.Update(ctx, id, func(b *models.Booking) error {
		patch.Apply(b)
		return ValidateBooking(*b)
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEventf(s.RequestID, "booking", "update", "id=%s backend=%s status=%s payment=%s", id, backend, after.Status, after.PaymentStatus)
	return after, nil
}

// Delete removes the booking and returns it for confirmation.
func (s BookingService) Delete(ctx context.Context, id string) (models.Booking, error) {
	removed, backend, err := s.Bookings.Delete(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEventf(s.RequestID, "booking", "delete", "id=%s backend=%s", id, backend)
	return removed, nil
}

// ValidateBooking checks the field invariants of a booking.
func ValidateBooking(b models.Booking) error {
	if b.TourPackageID == "" {
		return domain.ValidationError{Field: "tourPackageId", Msg: "wajib diisi"}
	}
	if b.CustomerName == "" {
		return domain.ValidationError{Field: "customerName", Msg: "wajib diisi"}
	}
	if _, err := mail.ParseAddress(b.CustomerEmail); err != nil {
		return domain.ValidationError{Field: "customerEmail", Msg: "format email tidak valid", Err: err}
	}
	start, err := utils.ParseDate(b.StartDate)
	if err != nil {
		return domain.ValidationError{Field: "startDate", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(b.EndDate)
	if err != nil {
		return domain.ValidationError{Field: "endDate", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return domain.ValidationError{Field: "endDate", Msg: "tidak boleh sebelum startDate"}
	}
	if b.Guests <= 0 {
		return domain.ValidationError{Field: "guests", Msg: "minimal 1"}
	}
	if b.TotalPrice < 0 {
		return domain.ValidationError{Field: "totalPrice", Msg: "tidak boleh negatif"}
	}
	if !b.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: fmt.Sprintf("status %q tidak dikenal", b.Status)}
	}
	if !b.PaymentStatus.Valid() {
		return domain.ValidationError{Field: "paymentStatus", Msg: fmt.Sprintf("status %q tidak dikenal", b.PaymentStatus)}
	}
	if b.PaymentStatus == models.PaymentPaid && b.PaymentID == "" {
		return domain.ValidationError{Field: "paymentId", Msg: "wajib ada jika paymentStatus=paid"}
	}
	return nil
}
