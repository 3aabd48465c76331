package api

import (
	"log"
	stdhttp "net/http"

	intconfig "travelagency/internal/config"
	"travelagency/internal/domain"
	h "travelagency/internal/http/handlers"
	"travelagency/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth(middleware.AuthOptions{
		Tokens:       a.Auth,
		TrustHeaders: env.TrustCallerHeaders,
	}), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	a.Engine = r
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleStaff)

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/routes", staff, a.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", a.Login)
		auth.POST("/register", a.Register)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", a.CreateBooking)
		bookings.GET("", a.ListBookings)
		bookings.GET("/:id", a.GetBooking)
		bookings.PUT("/:id", staff, a.UpdateBooking)
		bookings.DELETE("/:id", staff, a.DeleteBooking)
		bookings.GET("/:id/invoice", a.GetBookingInvoice)

		// Payments
		payments := api.Group("/payments")
		payments.POST("/notify", a.PaymentNotify)
	}

	return r
}
