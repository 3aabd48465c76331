package handlers

import (
	"net/http"

	"travelagency/internal/domain"
	"travelagency/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/payments/notify
//
// PayHere retries on non-2xx, so only store outages answer 500. A bad
// signature or unknown order answers 4xx and will not be retried.
func (a *API) PaymentNotify(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "form tidak valid"})
		return
	}
	n, err := services.ParseNotification(c.Request.PostForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	res, err := a.payments(c).HandleNotification(c.Request.Context(), n)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case domain.IsInvalidSignature(err), domain.IsValidation(err):
			status = http.StatusBadRequest
		case domain.IsNotFound(err):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"bookingId":     res.Booking.ID,
		"status":        res.Booking.Status,
		"paymentStatus": res.Booking.PaymentStatus,
	})
}
