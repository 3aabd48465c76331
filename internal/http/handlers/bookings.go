package handlers

import (
	"net/http"
	"strings"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	b, backend, err := a.bookings(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("X-Storage-Backend", string(backend))
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings
func (a *API) ListBookings(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if !caller.Authenticated() {
		RespondDomainError(c, domain.UnauthorizedError{Msg: "login diperlukan"})
		return
	}

	list, err := a.bookings(c).List(c.Request.Context(), caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	b, err := a.bookings(c).Get(c.Request.Context(), middleware.GetCaller(c), bookingID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id
func (a *API) UpdateBooking(c *gin.Context) {
	var patch models.BookingPatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	b, err := a.bookings(c).Update(c.Request.Context(), bookingID(c), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/bookings/:id
func (a *API) DeleteBooking(c *gin.Context) {
	b, err := a.bookings(c).Delete(c.Request.Context(), bookingID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus", "booking": b})
}

// GET /api/bookings/:id/invoice
func (a *API) GetBookingInvoice(c *gin.Context) {
	b, err := a.bookings(c).Get(c.Request.Context(), middleware.GetCaller(c), bookingID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if b.PaymentStatus != models.PaymentPaid {
		RespondDomainError(c, domain.ConflictError{Resource: "invoice", Msg: "booking belum lunas"})
		return
	}
	if a.Docs == nil {
		RespondError(c, http.StatusServiceUnavailable, "invoice tidak tersedia", nil)
		return
	}

	pdf, filename, err := a.Docs.GenerateInvoice(b, models.InvoiceNumber(b.ID))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat invoice", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func bookingID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
