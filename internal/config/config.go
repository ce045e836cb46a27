package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port              string
	DBURL             string
	JWTSecret         string
	TokenTTLMins      int
	BcryptCost        int
	ReadTimeoutSecs   int
	WriteTimeoutSecs  int
	IdleTimeoutSecs   int
	DBMaxConns        int
	DBMinConns        int
	DBMaxIdleSecs     int
	DBMaxLifeSecs     int
	DBConnTimeoutSecs int

	// Object storage is optional; when the endpoint is empty the
	// createUploadUrl mutation reports that uploads are not configured.
	UploadEndpoint   string
	UploadAccessKey  string
	UploadSecretKey  string
	UploadBucket     string
	UploadUseSSL     bool
	UploadExpirySecs int
}

// Load reads configuration from environment variables, applying defaults and
// validation. A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DBURL:             os.Getenv("DB_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTLMins:      getEnvInt("TOKEN_TTL_MINS", 60*24),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		ReadTimeoutSecs:   getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:  getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:   getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 20),
		DBMinConns:        getEnvInt("DB_MIN_CONNS", 2),
		DBMaxIdleSecs:     getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:     getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs: getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		UploadEndpoint:    os.Getenv("UPLOAD_ENDPOINT"),
		UploadAccessKey:   os.Getenv("UPLOAD_ACCESS_KEY"),
		UploadSecretKey:   os.Getenv("UPLOAD_SECRET_KEY"),
		UploadBucket:      getEnv("UPLOAD_BUCKET", "cinegraph-uploads"),
		UploadUseSSL:      getEnvBool("UPLOAD_USE_SSL", true),
		UploadExpirySecs:  getEnvInt("UPLOAD_EXPIRY_SECS", 900),
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTLMins <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_MINS must be positive")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.UploadEndpoint != "" {
		if cfg.UploadAccessKey == "" || cfg.UploadSecretKey == "" {
			return Config{}, fmt.Errorf("UPLOAD_ACCESS_KEY and UPLOAD_SECRET_KEY are required when UPLOAD_ENDPOINT is set")
		}
		if cfg.UploadExpirySecs <= 0 {
			return Config{}, fmt.Errorf("UPLOAD_EXPIRY_SECS must be positive")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
