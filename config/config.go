// Package config loads server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// Load reads configuration with sane development defaults. Environment
// variables override .env values.
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // .env is optional

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "worksuite.db")
	v.SetDefault("JWT_SECRET", "dev-secret-change-in-production")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		ttl = 24 * time.Hour
	}

	return &Config{
		Port:           v.GetInt("PORT"),
		DBPath:         v.GetString("DB_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       ttl,
		AllowedOrigins: strings.Split(v.GetString("ALLOWED_ORIGINS"), ","),
	}
}
