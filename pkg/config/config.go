package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	UploadDir     string
	TemplatesDir  string
	ChromePath    string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "templates"),
		ChromePath:    os.Getenv("CHROME_PATH"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
