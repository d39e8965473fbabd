package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogFormat    string `mapstructure:"LOG_FORMAT"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`
	EnableCORS   bool   `mapstructure:"ENABLE_CORS"`

	DiscordClientID       string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret   string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL    string `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordGuildID        string `mapstructure:"DISCORD_GUILD_ID"`
	DiscordRequireGuild   bool   `mapstructure:"DISCORD_REQUIRE_GUILD"`
	DiscordBotToken       string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordStaffChannelID string `mapstructure:"DISCORD_STAFF_CHANNEL_ID"`
	DiscordPublicKey      string `mapstructure:"DISCORD_PUBLIC_KEY"`
	DiscordRoleMapJSON    string `mapstructure:"DISCORD_ROLE_MAP_JSON"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`

	WOMBaseURL       string        `mapstructure:"WOM_BASE_URL"`
	WOMGroupID       int           `mapstructure:"WOM_GROUP_ID"`
	TempleBaseURL    string        `mapstructure:"TEMPLE_BASE_URL"`
	TrackerUserAgent string        `mapstructure:"TRACKER_USER_AGENT"`
	TrackerTimeout   time.Duration `mapstructure:"TRACKER_TIMEOUT"`
	TrackerCacheSize int           `mapstructure:"TRACKER_CACHE_SIZE"`
	TrackerCacheTTL  time.Duration `mapstructure:"TRACKER_CACHE_TTL"`

	DecisionWorkers   int `mapstructure:"DECISION_WORKERS"`
	DecisionQueueSize int `mapstructure:"DECISION_QUEUE_SIZE"`

	CleanupPlayerAfterSubmit bool `mapstructure:"CLEANUP_PLAYER_AFTER_SUBMIT"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "reborn.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:3000")
	viper.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	viper.SetDefault("WOM_BASE_URL", "https://api.wiseoldman.net/v2")
	viper.SetDefault("TEMPLE_BASE_URL", "https://templeosrs.com/api")
	viper.SetDefault("TRACKER_USER_AGENT", "reborn-ranks")
	viper.SetDefault("TRACKER_TIMEOUT", "15s")
	viper.SetDefault("TRACKER_CACHE_SIZE", 256)
	viper.SetDefault("TRACKER_CACHE_TTL", "1h")
	viper.SetDefault("DECISION_WORKERS", 2)
	viper.SetDefault("DECISION_QUEUE_SIZE", 64)

	viper.BindEnv("DISCORD_CLIENT_ID")
	viper.BindEnv("DISCORD_CLIENT_SECRET")
	viper.BindEnv("DISCORD_GUILD_ID")
	viper.BindEnv("DISCORD_REQUIRE_GUILD")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_STAFF_CHANNEL_ID")
	viper.BindEnv("DISCORD_PUBLIC_KEY")
	viper.BindEnv("DISCORD_ROLE_MAP_JSON")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("WOM_GROUP_ID")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("CLEANUP_PLAYER_AFTER_SUBMIT")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// RoleID resolves a requested role label through DISCORD_ROLE_MAP_JSON.
func (c *Config) RoleID(label string) (string, bool) {
	if c.DiscordRoleMapJSON == "" {
		return "", false
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(c.DiscordRoleMapJSON), &m); err != nil {
		return "", false
	}
	id, ok := m[label]
	return id, ok && id != ""
}

// PublicKey decodes the application's hex interaction key.
func (c *Config) PublicKey() (ed25519.PublicKey, error) {
	if c.DiscordPublicKey == "" {
		return nil, fmt.Errorf("DISCORD_PUBLIC_KEY is not set")
	}
	raw, err := hex.DecodeString(c.DiscordPublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode DISCORD_PUBLIC_KEY: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("DISCORD_PUBLIC_KEY has %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// ReviewReady reports whether staff messages can be posted.
func (c *Config) ReviewReady() bool {
	return c.DiscordBotToken != "" && c.DiscordStaffChannelID != ""
}
