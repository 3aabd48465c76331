package services

import (
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

// CanView applies the visibility rule to one booking. It runs after the
// fetch so it behaves the same whichever backend answered.
func CanView(caller domain.Caller, b models.Booking) bool {
	if caller.Privileged() {
		return true
	}
	if caller.Role != domain.RoleCustomer {
		return false
	}
	email := strings.TrimSpace(caller.Email)
	return email != "" && strings.EqualFold(strings.TrimSpace(b.CustomerEmail), email)
}

// FilterVisible reduces a listing to what caller may see.
func FilterVisible(caller domain.Caller, bookings []models.Booking) []models.Booking {
	if caller.Privileged() {
		return bookings
	}
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if CanView(caller, b) {
			out = append(out, b)
		}
	}
	return out
}
