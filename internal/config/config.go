package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Bot holds all configuration for the Discord bot process.
type Bot struct {
	DiscordToken string
	GuildID      string
	APIBaseURL   string

	// FocusChannelIDs are the voice channels in which members accrue
	// focus time. Joining any other channel is not tracked.
	FocusChannelIDs []string

	// TierRoleIDs are the six activity-level role IDs, lowest tier
	// first. All six must be configured for role reconciliation.
	TierRoleIDs []string

	AdminRoleID   string
	SweepInterval time.Duration
	APITimeout    time.Duration
}

// API holds all configuration for the persistence API process.
type API struct {
	Port        string
	DatabaseDSN string
}

// LoadBot loads bot configuration from environment variables.
func LoadBot() (*Bot, error) {
	// .env file is optional, continue with environment variables
	_ = godotenv.Load()

	cfg := &Bot{
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		GuildID:         os.Getenv("DISCORD_GUILD_ID"),
		APIBaseURL:      getEnvString("ALDER_API_URL", "http://localhost:8080"),
		FocusChannelIDs: getEnvList("FOCUS_CHANNEL_IDS"),
		TierRoleIDs:     getEnvList("ACTIVITY_ROLE_IDS"),
		AdminRoleID:     os.Getenv("ADMIN_ROLE_ID"),
		SweepInterval:   getEnvDuration("SWEEP_INTERVAL", 15*time.Minute),
		APITimeout:      getEnvDuration("API_TIMEOUT", 5*time.Second),
	}

	if cfg.DiscordToken == "" {
		return nil, &ConfigError{Field: "DISCORD_TOKEN", Message: "DISCORD_TOKEN is required"}
	}
	if cfg.GuildID == "" {
		return nil, &ConfigError{Field: "DISCORD_GUILD_ID", Message: "DISCORD_GUILD_ID is required"}
	}
	if len(cfg.FocusChannelIDs) == 0 {
		return nil, &ConfigError{Field: "FOCUS_CHANNEL_IDS", Message: "FOCUS_CHANNEL_IDS is required"}
	}
	if n := len(cfg.TierRoleIDs); n != 0 && n != 6 {
		return nil, &ConfigError{Field: "ACTIVITY_ROLE_IDS", Message: "ACTIVITY_ROLE_IDS must list exactly six role IDs"}
	}

	return cfg, nil
}

// LoadAPI loads API server configuration from environment variables.
func LoadAPI() (*API, error) {
	_ = godotenv.Load()

	cfg := &API{
		Port:        getEnvString("API_PORT", "8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, &ConfigError{Field: "DATABASE_DSN", Message: "DATABASE_DSN is required"}
	}

	return cfg, nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	// Accept plain minutes for operator convenience.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Minute
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
