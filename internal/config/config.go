package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var Config *ServerConfig

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
	// SessionCookieName is the name to use for the session cookie.
	SessionCookieName string
	// SessionCookieExpiration is the amount of time a session cookie is valid.
	SessionCookieExpiration time.Duration
	// IsHTTPS controls the Secure and SameSite attributes on cookies.
	IsHTTPS bool
	// Port is the port the server should run on.
	Port int

	// SMTP settings for the enrollment confirmation email. Emails are
	// skipped when these are incomplete.
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000"},
		DatabaseURL:             "postgres://localhost/studentportal?sslmode=disable",
		SessionCookieName:       "portal-session",
		SessionCookieExpiration: time.Hour * 24 * 14,
		IsHTTPS:                 false,
		Port:                    8080,
	}
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored if present.
func Load() *ServerConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment variables.")
	}

	cfg := DefaultConfig()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			log.Panicf("invalid PORT value %q: %v\n", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SESSION_COOKIE_NAME"); v != "" {
		cfg.SessionCookieName = v
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		cfg.AllowedOrigins = []string{v}
	}
	cfg.IsHTTPS = os.Getenv("HTTPS") == "true"

	cfg.SMTPServer = os.Getenv("SMTP_SERVER")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid SMTP_PORT value %q, emails disabled\n", v)
		} else {
			cfg.SMTPPort = port
		}
	}

	if cfg.SMTPServer == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" || cfg.SenderEmail == "" {
		log.Println("Warning: SMTP configuration is incomplete! Emails will be skipped.")
	}

	Config = cfg
	return cfg
}

func init() {
	// Tools and tests that never call Load still get a usable config.
	Config = DefaultConfig()
}
