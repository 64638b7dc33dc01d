package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Addr              string
	DataDir           string
	StoreDriver       string
	DbDsn             string
	JwtSecret         string
	JwtAccessMinutes  int
	ApiKey            string
	SmtpHost          string
	SmtpPort          int
	SmtpUser          string
	SmtpPass          string
	SmtpFrom          string
	CepBaseURL        string
	AllowedOriginsRaw string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", ":8080"),
		DataDir:           getEnv("DATA_DIR", "data"),
		StoreDriver:       getEnv("STORE_DRIVER", "file"),
		DbDsn:             os.Getenv("DB_DSN"),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:  getEnvInt("JWT_ACCESS_MINUTES", 60),
		ApiKey:            os.Getenv("API_KEY"),
		SmtpHost:          os.Getenv("SMTP_HOST"),
		SmtpPort:          getEnvInt("SMTP_PORT", 587),
		SmtpUser:          os.Getenv("SMTP_USER"),
		SmtpPass:          os.Getenv("SMTP_PASS"),
		SmtpFrom:          os.Getenv("SMTP_FROM"),
		CepBaseURL:        os.Getenv("CEP_BASE_URL"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	missing := []string{}
	switch cfg.StoreDriver {
	case "file":
	case "mysql":
		if cfg.DbDsn == "" {
			missing = append(missing, "DB_DSN")
		}
	default:
		return cfg, errors.New("STORE_DRIVER must be file or mysql")
	}

	// Auth is optional, but half-configured auth is a mistake.
	if cfg.JwtSecret != "" && cfg.ApiKey == "" {
		missing = append(missing, "API_KEY")
	}
	if cfg.ApiKey != "" && cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if cfg.SmtpHost != "" {
		if cfg.SmtpUser == "" {
			missing = append(missing, "SMTP_USER")
		}
		if cfg.SmtpPass == "" {
			missing = append(missing, "SMTP_PASS")
		}
		if cfg.SmtpFrom == "" {
			missing = append(missing, "SMTP_FROM")
		}
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

// AuthEnabled reports whether API routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JwtSecret != ""
}

// SmtpEnabled reports whether share-by-email delivery is configured.
func (c Config) SmtpEnabled() bool {
	return c.SmtpHost != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
