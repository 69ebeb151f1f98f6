// Package config reads service settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string

	Database Database

	JWTSecret   string
	AdminAPIKey string

	FirebaseCredentialsJSON string
	FirebaseProjectID       string

	UploadsDir      string
	BackupDir       string
	BackupRetention time.Duration
	PublicBaseURL   string
	PaymentQRURL    string

	SubmitTimeout time.Duration
	SessionTTL    time.Duration
}

type Database struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN prefers DATABASE_URL and otherwise builds a key/value postgres string.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Load reads the environment. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        GetEnv("PORT", "8080"),
		Environment: GetEnv("ENVIRONMENT", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "json"),
		Database: Database{
			URL:      GetEnv("DATABASE_URL", ""),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     getInt("DB_PORT", 5432),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", ""),
			Name:     GetEnv("DB_NAME", "biryanihouse"),
			SSLMode:  GetEnv("DB_SSL_MODE", "disable"),
		},
		JWTSecret:               GetEnv("JWT_SECRET", ""),
		AdminAPIKey:             GetEnv("ADMIN_API_KEY", ""),
		FirebaseCredentialsJSON: GetEnv("FIREBASE_CREDENTIALS_JSON", ""),
		FirebaseProjectID:       GetEnv("FIREBASE_PROJECT_ID", ""),
		UploadsDir:              GetEnv("UPLOADS_DIR", "/var/www/biryanihouse/uploads"),
		BackupDir:               GetEnv("BACKUP_DIR", "/var/www/biryanihouse/backup/uploads"),
		BackupRetention:         getDuration("BACKUP_RETENTION", 4*24*time.Hour),
		PublicBaseURL:           GetEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		PaymentQRURL:            GetEnv("PAYMENT_QR_URL", ""),
		SubmitTimeout:           getDuration("SUBMIT_TIMEOUT", 15*time.Second),
		SessionTTL:              getDuration("SESSION_TTL", 24*time.Hour),
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.AdminAPIKey == "" {
		errs = append(errs, errors.New("ADMIN_API_KEY must be set"))
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %q: must be between 1 and 65535", c.Port))
	}
	return errors.Join(errs...)
}

// FirebaseEnabled is true when Google sign-in can be verified.
func (c Config) FirebaseEnabled() bool {
	return c.FirebaseCredentialsJSON != "" && c.FirebaseProjectID != ""
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(GetEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return fallback
}
