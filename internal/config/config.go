package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultAppEnv      = "dev"
	defaultLogLevel    = "info"
	defaultAITimeout   = 30 * time.Second
	defaultCORSOrigins = "*"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	// DemoPassword enables the demo account and its sample businesses when
	// seeding.
	DemoPassword  string
	SessionSecret string
	JWTSecret     string
	DBPath        string
	Port          string
	AppEnv        string
	LogLevel      string

	// AIAPIURL is the base URL of the assistant backend. When empty the AI
	// proxy answers 503 unless AIMock is set.
	AIAPIURL    string
	AIMock      bool
	AITimeout   time.Duration
	CORSOrigins []string
}

// IsDev reports whether the application runs in a local development setup.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Load reads a local .env file, if any, then environment variables, and
// returns a populated Config.
func Load() Config {
	return load(".env")
}

func load(envFile string) Config {
	// Missing file is fine; production injects real environment variables.
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("AI_TIMEOUT", defaultAITimeout)
	v.SetDefault("AI_MOCK", false)
	v.SetDefault("CORS_ORIGINS", defaultCORSOrigins)

	cfg := Config{
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		DemoPassword:  v.GetString("DEMO_PASSWORD"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		DBPath:        v.GetString("DB_PATH"),
		Port:          v.GetString("PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		AIAPIURL:      strings.TrimRight(v.GetString("AI_API_URL"), "/"),
		AIMock:        v.GetBool("AI_MOCK"),
		AITimeout:     v.GetDuration("AI_TIMEOUT"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = defaultAITimeout
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{defaultCORSOrigins}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SessionSecret
	}

	if cfg.AdminEmail == "" {
		log.Warn().Msg("ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is not set")
	}

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
