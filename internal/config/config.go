// config.go
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	MongoDBName string
	Port        string

	PayPalMode         string
	PayPalClientID     string
	PayPalClientSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	// Operator inbox for new-order / delivery notifications.
	NotificationEmail string
	FrontendURL       string

	RabbitURL      string
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeminiModel    string
	PexelsAPIKey   string
	JWTSecret      string
	AdminCredsFile string
	CORSOrigins    []string
	AppEnv         string

	// Seed credentials for the admin store, used only when the credentials
	// file does not exist yet.
	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	// A missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		MongoURI:    getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDBName: getEnv("DB_NAME", "apebrain"),
		Port:        getEnv("PORT", "8080"),

		PayPalMode:         getEnv("PAYPAL_MODE", "sandbox"),
		PayPalClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
		PayPalClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),

		RabbitURL:      getEnv("RABBIT_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		PexelsAPIKey:   getEnv("PEXELS_API_KEY", ""),
		JWTSecret:      getEnv("JWT_SECRET", "apebrain-dev-secret"),
		AdminCredsFile: getEnv("ADMIN_CREDENTIALS_FILE", "admin_credentials.json"),
		CORSOrigins:    splitOrigins(getEnv("CORS_ORIGINS", "*")),
		AppEnv:         getEnv("APP_ENV", "development"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "apebrain2024"),
	}
}

// PayPalConfigured reports whether payment credentials are present. Order
// creation refuses to run without them.
func (c *Config) PayPalConfigured() bool {
	return c.PayPalClientID != "" && c.PayPalClientSecret != ""
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
