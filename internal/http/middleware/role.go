package middleware

import (
	"net/http"

	"travelagency/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles hanya mengizinkan caller dengan salah satu role berikut.
// Auth harus dipasang lebih dulu.
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		caller := GetCaller(c)
		if !caller.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: role tidak ditemukan",
				"request_id": GetRequestID(c),
			})
			return
		}

		if _, ok := allowed[caller.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden: role tidak diizinkan",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}
