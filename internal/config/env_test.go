package config

import (
	"os"
	"path/filepath"
	"testing"

	"travelagency/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	env := loadFrom("")

	if env.AppAddr != ":8080" || env.Currency != "LKR" || env.FallbackDBPath != "data/fallback.db" {
		t.Fatalf("unexpected defaults: %+v", env)
	}
	if env.PrimaryConfigured() {
		t.Fatalf("primary must not be configured without MYSQL_DSN")
	}
	if env.SMTPConfigured() {
		t.Fatalf("smtp must not be configured without SMTP_HOST")
	}
	if !env.TrustCallerHeaders {
		t.Fatalf("caller headers are trusted by default")
	}
	if len(env.CORSAllowedOrigins) == 0 {
		t.Fatalf("expected default cors origins")
	}
}

func TestLoadYAMLOverlayAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
payhere_merchant_id: "1211149"
payhere_merchant_secret: from-file
currency: lkr
operator_emails: "ops@example.com, desk@example.com"
smtp_host: smtp.example.com
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PAYHERE_MERCHANT_SECRET", "from-env")
	t.Setenv("TRUST_CALLER_HEADERS", "true")
	t.Setenv("MYSQL_DSN", "app:pw@tcp(db:3306)/travel")

	env := loadFrom(path)

	if env.MerchantID != "1211149" {
		t.Fatalf("merchant id from file, got %q", env.MerchantID)
	}
	if env.MerchantSecret != "from-env" {
		t.Fatalf("environment must win over file, got %q", env.MerchantSecret)
	}
	if env.Currency != "LKR" {
		t.Fatalf("currency must be upper-cased, got %q", env.Currency)
	}
	if len(env.OperatorEmails) != 2 || env.OperatorEmails[1] != "desk@example.com" {
		t.Fatalf("unexpected operator emails %v", env.OperatorEmails)
	}
	if !env.TrustCallerHeaders || !env.PrimaryConfigured() || !env.SMTPConfigured() {
		t.Fatalf("unexpected flags: %+v", env)
	}
}

func TestConnectPrimaryNotConfigured(t *testing.T) {
	db, err := ConnectPrimary("")
	if db != nil || !domain.IsNotConfigured(err) {
		t.Fatalf("expected not configured, got %v, %v", db, err)
	}
	if _, err := ConnectPrimary("not a dsn"); err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
}

func TestOpenFallbackCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fallback.db")
	db, err := OpenFallback(path)
	if err != nil {
		t.Fatalf("open fallback: %v", err)
	}
	defer db.Close()
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("exec on fallback: %v", err)
	}
}
