package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// Discord configuration
	Discord DiscordConfig

	// Command configuration
	Commands CommandConfig

	// Spam detection configuration
	Spam SpamConfig

	// Storage configuration
	Storage StorageConfig

	// Debug mode
	Debug bool
}

// DiscordConfig contains Discord configuration
type DiscordConfig struct {
	Token string
}

// CommandConfig contains the command front end configuration
type CommandConfig struct {
	Prefix string
}

// SpamConfig contains spam detection and mute timing configuration
type SpamConfig struct {
	WindowSeconds    int
	Threshold        int
	AutoMuteSeconds  int
	ReconcileSeconds int
	CacheSize        int
}

// StorageConfig contains storage paths
type StorageConfig struct {
	DataDir      string
	WordlistPath string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".warden")
	}

	wordlistPath := os.Getenv("WORDLIST_PATH")
	if wordlistPath == "" {
		wordlistPath = "assets/profanity.txt"
	}

	prefix := os.Getenv("COMMAND_PREFIX")
	if prefix == "" {
		prefix = "s."
	}

	return &Config{
		Discord: DiscordConfig{
			Token: os.Getenv("DISCORD_TOKEN"),
		},
		Commands: CommandConfig{
			Prefix: prefix,
		},
		Spam: SpamConfig{
			WindowSeconds:    envInt("SPAM_WINDOW_SECONDS", 3),
			Threshold:        envInt("SPAM_THRESHOLD", 5),
			AutoMuteSeconds:  envInt("AUTO_MUTE_SECONDS", 10),
			ReconcileSeconds: envInt("RECONCILE_TICK_SECONDS", 1),
			CacheSize:        envInt("ACTIVITY_CACHE_SIZE", 4096),
		},
		Storage: StorageConfig{
			DataDir:      dataDir,
			WordlistPath: wordlistPath,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

// SpamWindow returns the sliding window as a duration
func (c *SpamConfig) SpamWindow() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// AutoMuteDuration returns the automatic mute length as a duration
func (c *SpamConfig) AutoMuteDuration() time.Duration {
	return time.Duration(c.AutoMuteSeconds) * time.Second
}

// ReconcileInterval returns the reconcile tick as a duration
func (c *SpamConfig) ReconcileInterval() time.Duration {
	return time.Duration(c.ReconcileSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return &ConfigError{Field: "DISCORD_TOKEN", Message: "required"}
	}
	if c.Spam.Threshold <= 0 {
		return &ConfigError{Field: "SPAM_THRESHOLD", Message: "must be positive"}
	}
	if c.Spam.WindowSeconds <= 0 {
		return &ConfigError{Field: "SPAM_WINDOW_SECONDS", Message: "must be positive"}
	}
	if c.Spam.CacheSize <= 0 {
		return &ConfigError{Field: "ACTIVITY_CACHE_SIZE", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
