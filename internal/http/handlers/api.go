package handlers

import (
	"travelagency/internal/domain/models"
	"travelagency/internal/http/middleware"
	"travelagency/internal/services"

	"github.com/gin-gonic/gin"
)

// InvoiceRenderer renders the PDF of a paid booking.
type InvoiceRenderer interface {
	GenerateInvoice(b models.Booking, invoiceNo string) ([]byte, string, error)
}

// API holds the services the handlers call. Services are copied per
// request so each carries its request id into logs.
type API struct {
	Bookings services.BookingService
	Payments services.PaymentService
	Auth     services.AuthService
	Docs     InvoiceRenderer
	Checks   []HealthCheck
	Engine   *gin.Engine
}

func (a *API) bookings(c *gin.Context) services.BookingService {
	s := a.Bookings
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (a *API) payments(c *gin.Context) services.PaymentService {
	s := a.Payments
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (a *API) auth(c *gin.Context) services.AuthService {
	s := a.Auth
	s.RequestID = middleware.GetRequestID(c)
	return s
}
