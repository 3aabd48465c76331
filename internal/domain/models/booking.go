package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Booking is the stored booking record. Package and customer fields are a
// snapshot taken at booking time and are never re-derived.
type Booking struct {
	ID              string        `json:"id"`
	TourPackageID   string        `json:"tourPackageId"`
	TourPackageName string        `json:"tourPackageName"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	Guests          int           `json:"guests"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentID       string        `json:"paymentId,omitempty"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (b Booking) RecordID() string { return b.ID }

// Touched stamps UpdatedAt, and CreatedAt when still zero.
func (b Booking) Touched(now time.Time) Booking {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return b
}

// BookingInput is the public create payload: no id or statuses.
type BookingInput struct {
	TourPackageID   string  `json:"tourPackageId"`
	TourPackageName string  `json:"tourPackageName"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Guests          int     `json:"guests"`
	TotalPrice      float64 `json:"totalPrice"`
	SpecialRequests string  `json:"specialRequests"`
}

// Booking builds an unsaved pending booking from the input.
func (in BookingInput) Booking() Booking {
	return Booking{
		TourPackageID:   strings.TrimSpace(in.TourPackageID),
		TourPackageName: strings.TrimSpace(in.TourPackageName),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		StartDate:       strings.TrimSpace(in.StartDate),
		EndDate:         strings.TrimSpace(in.EndDate),
		Guests:          in.Guests,
		TotalPrice:      in.TotalPrice,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		Status:          BookingPending,
		PaymentStatus:   PaymentPending,
	}
}

// BookingPatch supports PATCH-style updates via key presence.
type BookingPatch struct {
	TourPackageID   *string        `json:"tourPackageId"`
	TourPackageName *string        `json:"tourPackageName"`
	CustomerName    *string        `json:"customerName"`
	CustomerEmail   *string        `json:"customerEmail"`
	CustomerPhone   *string        `json:"customerPhone"`
	StartDate       *string        `json:"startDate"`
	EndDate         *string        `json:"endDate"`
	Guests          *int           `json:"guests"`
	TotalPrice      *float64       `json:"totalPrice"`
	Status          *BookingStatus `json:"status"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus"`
	PaymentID       *string        `json:"paymentId"`
	PaymentMethod   *string        `json:"paymentMethod"`
	SpecialRequests *string        `json:"specialRequests"`
}

func (p BookingPatch) IsEmpty() bool {
	return p == BookingPatch{}
}

// Apply merges present fields into b. id and timestamps are untouched.
func (p BookingPatch) Apply(b *Booking) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setStr(&b.TourPackageID, p.TourPackageID)
	setStr(&b.TourPackageName, p.TourPackageName)
	setStr(&b.CustomerName, p.CustomerName)
	setStr(&b.CustomerEmail, p.CustomerEmail)
	setStr(&b.CustomerPhone, p.CustomerPhone)
	setStr(&b.StartDate, p.StartDate)
	setStr(&b.EndDate, p.EndDate)
	setStr(&b.PaymentID, p.PaymentID)
	setStr(&b.PaymentMethod, p.PaymentMethod)
	setStr(&b.SpecialRequests, p.SpecialRequests)
	if p.Guests != nil {
		b.Guests = *p.Guests
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
}
