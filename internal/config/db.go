package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"travelagency/internal/domain"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// ConnectPrimary opens the remote MySQL store. An empty DSN yields
// domain.NotConfiguredError. A failed ping is only logged: the pool stays
// usable and the gateway falls back per call until MySQL is reachable.
func ConnectPrimary(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, domain.NotConfiguredError{Backend: "primary"}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("dsn mysql tidak valid: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("gagal open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Printf("warning: mysql belum bisa di-ping, fallback store akan dipakai: %v", err)
		return db, nil
	}

	log.Println("Berhasil konek ke database MySQL")
	return db, nil
}

// OpenFallback opens (creating when missing) the local SQLite file that
// backs the fallback store. It survives restarts, not volume loss.
func OpenFallback(path string) (*sql.DB, error) {
	if path == "" {
		return nil, domain.NotConfiguredError{Backend: "fallback"}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("gagal membuat direktori fallback: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("gagal open sqlite: %w", err)
	}
	// single writer; sqlite serializes writes anyway
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gagal ping sqlite: %w", err)
	}
	return db, nil
}

// Ping reports reachability of a store for the health endpoint.
func Ping(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return domain.NotConfiguredError{}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
