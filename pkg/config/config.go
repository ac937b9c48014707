package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides
		viper.SetEnvPrefix("REVIEWRADAR")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine - defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("pipeline.downloads_root") == "" {
		return fmt.Errorf("pipeline.downloads_root must not be empty")
	}

	if err := validateCredentials(); err != nil {
		return err
	}

	// Auto-correct invalid worker count
	if viper.GetInt("pipeline.workers") <= 0 {
		viper.Set("pipeline.workers", 2)
	}

	// Auto-correct implausible size ceiling
	if viper.GetInt64("pipeline.max_audio_bytes") <= 0 {
		viper.Set("pipeline.max_audio_bytes", int64(20*1024*1024))
	}

	return nil
}

// validateCredentials warns about placeholder credentials and rejects
// them in production.
func validateCredentials() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"YOUR_TOKEN",
		"changeme",
		"CHANGEME",
	}

	check := func(name, value string) error {
		for _, placeholder := range placeholders {
			if value == placeholder {
				if isProduction {
					return fmt.Errorf("invalid %s: cannot use placeholder values in production", name)
				}
				fmt.Printf("Warning: %s is using a placeholder value\n", name)
				return nil
			}
		}
		return nil
	}

	for _, key := range viper.GetStringSlice("youtube.api_keys") {
		if err := check("YouTube API key", key); err != nil {
			return err
		}
	}
	if err := check("TikTok API token", viper.GetString("tiktok.token")); err != nil {
		return err
	}
	if err := check("Whisper API key", viper.GetString("whisper.api_key")); err != nil {
		return err
	}
	if err := check("Chat API key", viper.GetString("chat.api_key")); err != nil {
		return err
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Pipeline.DownloadsRoot == "" {
		return fmt.Errorf("downloads root must not be empty")
	}

	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = 2
	}

	if c.Pipeline.MaxAudioBytes <= 0 {
		c.Pipeline.MaxAudioBytes = 20 * 1024 * 1024
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/reviews.db")
	viper.SetDefault("database.verbose", false)

	// Pipeline defaults
	viper.SetDefault("pipeline.downloads_root", "./downloads")
	viper.SetDefault("pipeline.target_language", "en")
	viper.SetDefault("pipeline.max_audio_bytes", 20*1024*1024)
	viper.SetDefault("pipeline.workers", 2)
	viper.SetDefault("pipeline.fetch_timeout", 3*time.Minute)
	viper.SetDefault("pipeline.ffmpeg_path", "ffmpeg")
	viper.SetDefault("pipeline.ffprobe_path", "ffprobe")
	viper.SetDefault("pipeline.ffmpeg_timeout", 2*time.Minute)
	viper.SetDefault("pipeline.ytdlp_path", "yt-dlp")

	// YouTube Data API defaults
	viper.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("youtube.timeout", 15*time.Second)
	viper.SetDefault("youtube.rate_limit", 5)
	viper.SetDefault("youtube.default_limit", 3)

	// EnsembleData TikTok API defaults
	viper.SetDefault("tiktok.base_url", "https://ensembledata.com/apis")
	viper.SetDefault("tiktok.country", "us")
	viper.SetDefault("tiktok.timeout", 15*time.Second)
	viper.SetDefault("tiktok.rate_limit", 5)
	viper.SetDefault("tiktok.default_limit", 2)

	// Shopping listings API defaults
	viper.SetDefault("shopping.endpoint", "https://realtime.oxylabs.io/v1/queries")
	viper.SetDefault("shopping.domain", "com")
	viper.SetDefault("shopping.pages", 2)
	viper.SetDefault("shopping.timeout", 60*time.Second)

	// Whisper defaults
	viper.SetDefault("whisper.api_url", "https://api.openai.com/v1/audio/transcriptions")
	viper.SetDefault("whisper.model", "whisper-1")
	viper.SetDefault("whisper.timeout", 5*time.Minute)

	// Chat defaults
	viper.SetDefault("chat.api_url", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("chat.model", "gpt-4-turbo-preview")
	viper.SetDefault("chat.temperature", 0.7)
	viper.SetDefault("chat.timeout", 60*time.Second)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"reviews": 10,
		"runs":    60,
		"default": 120,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})
}
