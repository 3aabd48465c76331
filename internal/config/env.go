package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	// MySQLDSN kosong berarti primary store tidak dikonfigurasi.
	MySQLDSN       string
	FallbackDBPath string

	MerchantID     string
	MerchantSecret string
	Currency       string

	JWTSecret          string
	TrustCallerHeaders bool
	CORSAllowedOrigins []string

	OperatorEmails []string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	InvoiceDir     string
}

// PrimaryConfigured reports whether a remote store was configured at all.
// Reachability is decided per call by the persistence gateway.
func (e Env) PrimaryConfigured() bool {
	return strings.TrimSpace(e.MySQLDSN) != ""
}

// SMTPConfigured reports whether outgoing mail can be delivered.
func (e Env) SMTPConfigured() bool {
	return e.SMTPHost != "" && e.SMTPPort > 0
}

// LoadEnv reads .env (when present), an optional YAML file named by
// CONFIG_FILE, then process environment. Environment wins.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: gagal membaca .env: %v", err)
	}
	return loadFrom(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
}

func loadFrom(configFile string) Env {
	v := viper.New()
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("fallback_db_path", "data/fallback.db")
	v.SetDefault("currency", "LKR")
	v.SetDefault("jwt_secret", "super-secret-key-change-me")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("trust_caller_headers", true)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("warning: gagal membaca config %s: %v", configFile, err)
		}
	}

	return Env{
		AppAddr:            strings.TrimSpace(v.GetString("app_addr")),
		GinMode:            strings.TrimSpace(v.GetString("gin_mode")),
		MySQLDSN:           strings.TrimSpace(v.GetString("mysql_dsn")),
		FallbackDBPath:     strings.TrimSpace(v.GetString("fallback_db_path")),
		MerchantID:         strings.TrimSpace(v.GetString("payhere_merchant_id")),
		MerchantSecret:     strings.TrimSpace(v.GetString("payhere_merchant_secret")),
		Currency:           strings.ToUpper(strings.TrimSpace(v.GetString("currency"))),
		JWTSecret:          v.GetString("jwt_secret"),
		TrustCallerHeaders: v.GetBool("trust_caller_headers"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		OperatorEmails:     splitList(v.GetString("operator_emails")),
		SMTPHost:           strings.TrimSpace(v.GetString("smtp_host")),
		SMTPPort:           v.GetInt("smtp_port"),
		SMTPUser:           strings.TrimSpace(v.GetString("smtp_user")),
		SMTPPassword:       v.GetString("smtp_password"),
		SMTPFrom:           strings.TrimSpace(v.GetString("smtp_from")),
		InvoiceDir:         strings.TrimSpace(v.GetString("invoice_dir")),
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
