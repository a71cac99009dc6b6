package config

import (
	"log"
	"os"
)

const (
	defaultDBPath = "./dewey.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string

	// StyleFile optionally overrides the compiled-in dough style library.
	StyleFile string

	// Remote mirror for locally-edited collections.
	SyncURL   string
	SyncToken string

	// Third-party brewing batch API credentials.
	BatchAPIURL  string
	BatchAPIUser string
	BatchAPIKey  string

	// OpenAI-compatible endpoint for tap-description copy.
	AIURL string
	AIKey string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		StyleFile:     os.Getenv("STYLE_FILE"),
		SyncURL:       os.Getenv("SYNC_URL"),
		SyncToken:     os.Getenv("SYNC_TOKEN"),
		BatchAPIURL:   os.Getenv("BATCH_API_URL"),
		BatchAPIUser:  os.Getenv("BATCH_API_USER"),
		BatchAPIKey:   os.Getenv("BATCH_API_KEY"),
		AIURL:         os.Getenv("AI_URL"),
		AIKey:         os.Getenv("AI_KEY"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// IsDev reports whether the app runs in development mode. Migrations run
// automatically on boot only in dev; production applies them explicitly.
func (c Config) IsDev() bool {
	return os.Getenv("APP_ENV") != "production"
}
