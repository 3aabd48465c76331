package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelagency/internal/app"
	intconfig "travelagency/internal/config"
	router "travelagency/internal/http"
	"travelagency/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "travelagency",
		Short:         "Booking dan settlement pembayaran travel agency",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Jalankan HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Buat tabel yang belum ada di kedua store",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := app.New(intconfig.LoadEnv())
				if err != nil {
					return err
				}
				defer a.Close()
				if err := a.Stores.Migrate(cmd.Context()); err != nil {
					return err
				}
				log.Println("Migrasi selesai.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "next-ref",
			Short: "Tampilkan kode booking berikutnya tanpa menyimpannya",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := app.New(intconfig.LoadEnv())
				if err != nil {
					return err
				}
				defer a.Close()
				if err := a.Stores.Migrate(cmd.Context()); err != nil {
					return err
				}
				alloc := services.NewBookingAllocator(a.Stores.Bookings, a.Stores.Sequences)
				fmt.Fprintln(cmd.OutOrStdout(), alloc.Peek(cmd.Context()))
				return nil
			},
		},
	)
	return root
}

func serve() error {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	a, err := app.New(env)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = a.Stores.Migrate(ctx)
	cancel()
	if err != nil {
		return err
	}

	r := router.NewRouter(env, a.API)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server berjalan di http://localhost%s (primary=%t)", env.AppAddr, env.PrimaryConfigured())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("gagal menjalankan server: %w", err)
	case <-quit:
	}

	log.Println("Mematikan server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server gagal: %w", err)
	}

	log.Println("Server berhenti dengan aman.")
	return nil
}
