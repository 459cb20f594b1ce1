package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralises runtime configuration.
type Config struct {
	HTTPPort        string
	DatabaseURL     string
	JWTSecret       string
	CSRFSecret      string
	JWTIssuer       string
	TokenExpiry     time.Duration
	ResetTokenTTL   time.Duration
	ResetURLBase    string
	NotifyTimeout   time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	AllowedOrigins  []string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// Load reads configuration from environment variables providing sane
// defaults. A .env file in the working directory is loaded first when
// present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	httpPort := getEnv("HTTP_PORT", "")
	if httpPort == "" {
		httpPort = getEnv("PORT", "8080")
	}

	cfg := Config{
		HTTPPort:        httpPort,
		DatabaseURL:     resolveDatabaseURL(),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CSRFSecret:      getEnv("CSRF_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "realty"),
		TokenExpiry:     getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		ResetTokenTTL:   getDurationEnv("RESET_TOKEN_TTL", 5*time.Minute),
		ResetURLBase:    getEnv("RESET_URL_BASE", "http://localhost:4200/reset-password"),
		NotifyTimeout:   getDurationEnv("NOTIFY_TIMEOUT", 10*time.Second),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getIntEnv("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		AllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeoutSec:  getIntEnv("HTTP_READ_TIMEOUT", 15),
		WriteTimeoutSec: getIntEnv("HTTP_WRITE_TIMEOUT", 15),
		IdleTimeoutSec:  getIntEnv("HTTP_IDLE_TIMEOUT", 60),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database configuration missing: provide DATABASE_URL or PG* env vars")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CSRFSecret == "" {
		return Config{}, fmt.Errorf("CSRF_SECRET is required")
	}
	if cfg.CSRFSecret == cfg.JWTSecret {
		return Config{}, fmt.Errorf("CSRF_SECRET must differ from JWT_SECRET")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}

func resolveDatabaseURL() string {
	for _, key := range []string{"DATABASE_URL", "POSTGRES_URL", "PGURL"} {
		if url := strings.TrimSpace(os.Getenv(key)); url != "" {
			return normalisePostgresScheme(url)
		}
	}

	host := getEnv("PGHOST", "")
	if host == "" {
		return ""
	}
	user := getEnv("PGUSER", "postgres")
	password := os.Getenv("PGPASSWORD")
	database := getEnv("PGDATABASE", user)
	port := getEnv("PGPORT", "5432")
	sslMode := getEnv("PGSSLMODE", "require")

	dsn := &neturl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
	}
	dsn.User = neturl.User(user)
	if password != "" {
		dsn.User = neturl.UserPassword(user, password)
	}

	query := dsn.Query()
	if sslMode != "" {
		query.Set("sslmode", sslMode)
	}
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func normalisePostgresScheme(url string) string {
	if strings.HasPrefix(url, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}
