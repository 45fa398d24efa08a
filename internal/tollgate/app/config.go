package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/joho/godotenv"
)

type Config struct {
	Issuer        string        // Optional: issuer claim for session tokens (default: tollgate)
	JWTSecret     string        // Optional: HS256 secret for session tokens (default: ephemeral)
	LicenseSecret string        // Optional: HMAC secret for license signatures (default: JWTSecret)
	TokenTTL      time.Duration // Optional: session token lifetime (default: 100h)
	OTPTTL        time.Duration // Optional: one-time code lifetime (default: 5m)
	RSABits       int           // Optional: key authority modulus size (default: 2048, min: 2048)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./tollgate.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 10m)
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:        getEnvOrDefault("TOLLGATE_ISSUER", "tollgate"),
		JWTSecret:     os.Getenv("TOLLGATE_JWT_SECRET"),
		LicenseSecret: os.Getenv("TOLLGATE_LICENSE_SECRET"),
		TokenTTL:      getEnvDurationOrDefault("TOLLGATE_TOKEN_TTL", jwtx.DefaultSessionTTL),
		OTPTTL:        getEnvDurationOrDefault("TOLLGATE_OTP_TTL", 5*time.Minute),
		RSABits:       getEnvIntOrDefault("TOLLGATE_RSA_BITS", 2048),

		DatabaseFile:         getEnvOrDefault("TOLLGATE_DATABASE_FILE", "tollgate.db"),
		PepperFile:           getEnvOrDefault("TOLLGATE_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}

	if cfg.LicenseSecret == "" {
		cfg.LicenseSecret = cfg.JWTSecret
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
