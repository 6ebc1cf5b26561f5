package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	DBDriver       string
	DatabaseDSN    string
	JWTSecret      string
	CafeAPIURL     string
	CafeAPIToken   string
	// CafeAPILogin and CafeAPIPassword are owner credentials the form's
	// client logs in with, so submits survive access token expiry.
	CafeAPILogin    string
	CafeAPIPassword string
	CafeAPILoginURL string
	CafeAPITimeout  time.Duration
	FormIdleTimeout time.Duration
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	origins := []string{"http://localhost:3000"}
	origins = append(origins, parseList("ALLOWED_ORIGINS")...)

	driver := strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		if driver == "sqlite" {
			dsn = "cafein.db"
		} else {
			dsn = "host=localhost user=postgres password=postgres dbname=cafein port=5432 sslmode=disable"
		}
	}

	return &Config{
		Port:            getEnv("PORT", "8083"),
		GinMode:         os.Getenv("GIN_MODE"),
		AllowedOrigins:  origins,
		DBDriver:        driver,
		DatabaseDSN:     dsn,
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		CafeAPIURL:      getEnv("CAFE_API_URL", "http://localhost:3001/cafes"),
		CafeAPIToken:    os.Getenv("CAFE_API_TOKEN"),
		CafeAPILogin:    os.Getenv("CAFE_API_LOGIN"),
		CafeAPIPassword: os.Getenv("CAFE_API_PASSWORD"),
		CafeAPILoginURL: os.Getenv("CAFE_API_LOGIN_URL"),
		CafeAPITimeout:  getDuration("CAFE_API_TIMEOUT", 5*time.Second),
		FormIdleTimeout: getDuration("FORM_IDLE_TIMEOUT", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("Ignoring invalid %s %q", key, raw)
		return fallback
	}
	return parsed
}

func parseList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
