package config

import (
	"testing"
	"time"
)

func TestLoadBotMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_GUILD_ID", "1")
	t.Setenv("FOCUS_CHANNEL_IDS", "2")

	_, err := LoadBot()
	if err == nil {
		t.Fatal("expected error for missing DISCORD_TOKEN")
	}
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Field != "DISCORD_TOKEN" {
		t.Errorf("Field = %q, want DISCORD_TOKEN", cfgErr.Field)
	}
}

func TestLoadBotDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "123")
	t.Setenv("FOCUS_CHANNEL_IDS", "100, 200,300")
	t.Setenv("ALDER_API_URL", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("ACTIVITY_ROLE_IDS", "")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SweepInterval != 15*time.Minute {
		t.Errorf("SweepInterval = %v, want 15m", cfg.SweepInterval)
	}
	if len(cfg.FocusChannelIDs) != 3 || cfg.FocusChannelIDs[1] != "200" {
		t.Errorf("FocusChannelIDs = %v", cfg.FocusChannelIDs)
	}
}

func TestLoadBotSweepIntervalMinutes(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "123")
	t.Setenv("FOCUS_CHANNEL_IDS", "100")
	t.Setenv("SWEEP_INTERVAL", "5")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error: %v", err)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want 5m", cfg.SweepInterval)
	}
}

func TestLoadBotBadTierRoleCount(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "123")
	t.Setenv("FOCUS_CHANNEL_IDS", "100")
	t.Setenv("ACTIVITY_ROLE_IDS", "1,2,3")

	if _, err := LoadBot(); err == nil {
		t.Fatal("expected error for three role IDs")
	}
}

func TestLoadAPIMissingDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")

	if _, err := LoadAPI(); err == nil {
		t.Fatal("expected error for missing DATABASE_DSN")
	}
}

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/alder")
	t.Setenv("API_PORT", "")

	cfg, err := LoadAPI()
	if err != nil {
		t.Fatalf("LoadAPI() error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}
