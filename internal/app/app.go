package app

import (
	"context"
	"database/sql"
	"log"
	"time"

	intconfig "travelagency/internal/config"
	"travelagency/internal/domain"
	h "travelagency/internal/http/handlers"
	"travelagency/internal/repositories"
	"travelagency/internal/services"
)

// App is the wired process: both databases, the stores over them and the
// handler dependencies.
type App struct {
	Env      intconfig.Env
	Primary  *sql.DB
	Fallback *sql.DB
	Stores   *repositories.Stores
	API      *h.API
}

// New opens both stores and wires services. Only a fallback failure is
// fatal: without a primary the gateway serves from the fallback.
func New(env intconfig.Env) (*App, error) {
	fallback, err := intconfig.OpenFallback(env.FallbackDBPath)
	if err != nil {
		return nil, err
	}

	primary, err := intconfig.ConnectPrimary(env.MySQLDSN)
	if err != nil {
		if !domain.IsNotConfigured(err) {
			log.Printf("warning: primary store dimatikan: %v", err)
		}
		primary = nil
	}

	return Wire(env, primary, fallback), nil
}

// Wire builds the services over already-open connections.
func Wire(env intconfig.Env, primary, fallback *sql.DB) *App {
	stores := repositories.NewStores(env.PrimaryConfigured() && primary != nil, primary, fallback)

	var mailer services.Mailer = services.LogMailer{}
	if env.SMTPConfigured() {
		mailer = services.SMTPMailer{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			Username: env.SMTPUser,
			Password: env.SMTPPassword,
			From:     env.SMTPFrom,
		}
	}

	docs := services.DocsService{Company: "Travel Agency", Currency: env.Currency, Dir: env.InvoiceDir}
	bookings := services.BookingService{
		Bookings:  stores.Bookings,
		Allocator: services.NewBookingAllocator(stores.Bookings, stores.Sequences),
	}

	api := &h.API{
		Bookings: bookings,
		Payments: services.PaymentService{
			Config: services.PayHereConfig{
				MerchantID:     env.MerchantID,
				MerchantSecret: env.MerchantSecret,
				Currency:       env.Currency,
			},
			Bookings: stores.Bookings,
			Notifier: services.Notifier{
				Mailer:         mailer,
				Docs:           docs,
				Invoices:       stores.Invoices,
				OperatorEmails: env.OperatorEmails,
				Currency:       env.Currency,
			},
		},
		Auth: services.AuthService{
			Users:     stores.Users,
			Allocator: services.ReferenceAllocator{Prefix: "U", Width: 3, Source: stores.Users, Sequence: stores.Sequences},
			Secret:    []byte(env.JWTSecret),
			TTL:       24 * time.Hour,
		},
		Docs: docs,
		Checks: []h.HealthCheck{
			{Name: "fallback", Ping: func(ctx context.Context) error { return intconfig.Ping(ctx, fallback) }},
			{Name: "primary", Optional: true, Ping: func(ctx context.Context) error { return intconfig.Ping(ctx, primary) }},
		},
	}

	return &App{Env: env, Primary: primary, Fallback: fallback, Stores: stores, API: api}
}

func (a *App) Close() {
	if a.Primary != nil {
		_ = a.Primary.Close()
	}
	if a.Fallback != nil {
		_ = a.Fallback.Close()
	}
}
