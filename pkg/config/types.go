package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Pipeline    PipelineConfig   `mapstructure:"pipeline"`
	YouTube     YouTubeConfig    `mapstructure:"youtube"`
	TikTok      TikTokConfig     `mapstructure:"tiktok"`
	Shopping    ShoppingConfig   `mapstructure:"shopping"`
	Whisper     WhisperConfig    `mapstructure:"whisper"`
	Chat        ChatConfig       `mapstructure:"chat"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limiting"`
	Security    SecurityConfig   `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains run-history database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// PipelineConfig contains per-query pipeline settings
type PipelineConfig struct {
	DownloadsRoot     string        `mapstructure:"downloads_root"`
	TargetLanguage    string        `mapstructure:"target_language"`
	MaxAudioBytes     int64         `mapstructure:"max_audio_bytes"`
	Workers           int           `mapstructure:"workers"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	FFmpegPath        string        `mapstructure:"ffmpeg_path"`
	FFprobePath       string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout     time.Duration `mapstructure:"ffmpeg_timeout"`
	YtDlpPath         string        `mapstructure:"ytdlp_path"`
}

// YouTubeConfig contains YouTube Data API settings.
// APIKeys is an ordered list: the first key is preferred, later keys are
// fallbacks once a key reports quota exhaustion.
type YouTubeConfig struct {
	APIKeys      []string      `mapstructure:"api_keys"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    int           `mapstructure:"rate_limit"`
	DefaultLimit int           `mapstructure:"default_limit"`
}

// TikTokConfig contains EnsembleData API settings
type TikTokConfig struct {
	Token        string        `mapstructure:"token"`
	BaseURL      string        `mapstructure:"base_url"`
	Country      string        `mapstructure:"country"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    int           `mapstructure:"rate_limit"`
	DefaultLimit int           `mapstructure:"default_limit"`
}

// ShoppingConfig contains shopping listings API settings
type ShoppingConfig struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Endpoint string        `mapstructure:"endpoint"`
	Domain   string        `mapstructure:"domain"`
	Pages    int           `mapstructure:"pages"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WhisperConfig contains speech-to-text API settings
type WhisperConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChatConfig contains text-generation API settings
type ChatConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	APIURL      string        `mapstructure:"api_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
}
