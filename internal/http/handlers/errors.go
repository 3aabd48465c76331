package handlers

import (
	"net/http"

	"travelagency/internal/domain"
	"travelagency/internal/http/middleware"
	"travelagency/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsInvalidSignature(err):
		respondError(c, http.StatusBadRequest, "invalid_signature", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsInternal(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error())
	case domain.IsUnavailable(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "store_unavailable", "penyimpanan tidak tersedia")
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan")
	}
}
