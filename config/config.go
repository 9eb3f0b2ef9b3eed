package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	TokenTTLMin  int
	UploadDir    string
	CompanyPhone string

	// SMTP settings for alert emails; empty host disables real delivery.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	// SMS gateway settings; empty URL disables real delivery.
	SMSAPIURL string
	SMSAPIKey string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
		return def
	}
	return n
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "steg_parking"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		JWTSecret:    get("JWT_SECRET", "dev-secret"),
		TokenTTLMin:  getInt("TOKEN_TTL_MIN", 30),
		UploadDir:    get("UPLOAD_DIR", "uploads"),
		CompanyPhone: get("COMPANY_PHONE", "+216 71 340 211"),

		SMTPHost:     get("SMTP_HOST", ""),
		SMTPPort:     get("SMTP_PORT", "587"),
		SMTPUsername: get("SMTP_USERNAME", ""),
		SMTPPassword: get("SMTP_PASSWORD", ""),

		SMSAPIURL: get("SMS_API_URL", ""),
		SMSAPIKey: get("SMS_API_KEY", ""),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
