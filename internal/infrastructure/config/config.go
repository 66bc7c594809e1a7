// Package config loads service configuration.
//
// Values are layered: built-in defaults, then an optional TOML file named by
// CONFIG_FILE, then environment variables. Struct tags carry no envconfig
// defaults so an unset variable never overwrites a value from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// FileEnv names the variable holding the optional TOML file path.
const FileEnv = "CONFIG_FILE"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
	Desktop   DesktopConfig   `toml:"desktop"`
	Terminal  TerminalConfig  `toml:"terminal"`
	Content   ContentConfig   `toml:"content"`
	Stream    StreamConfig    `toml:"stream"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string        `envconfig:"PORT" toml:"port"`
	Host              string        `envconfig:"HOST" toml:"host"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" toml:"shutdown_timeout"`
	Compression       bool          `envconfig:"COMPRESSION" toml:"compression"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ORIGINS" toml:"allow_origins"`
}

// DesktopConfig holds window geometry and hub limits.
type DesktopConfig struct {
	ViewportWidth  int           `envconfig:"DESKTOP_VIEWPORT_WIDTH" toml:"viewport_width"`
	ViewportHeight int           `envconfig:"DESKTOP_VIEWPORT_HEIGHT" toml:"viewport_height"`
	WindowWidth    int           `envconfig:"DESKTOP_WINDOW_WIDTH" toml:"window_width"`
	WindowHeight   int           `envconfig:"DESKTOP_WINDOW_HEIGHT" toml:"window_height"`
	MinWidth       int           `envconfig:"DESKTOP_MIN_WIDTH" toml:"min_width"`
	MinHeight      int           `envconfig:"DESKTOP_MIN_HEIGHT" toml:"min_height"`
	BaseZIndex     int           `envconfig:"DESKTOP_BASE_Z" toml:"base_z_index"`
	MaxDesktops    int           `envconfig:"DESKTOP_MAX" toml:"max_desktops"`
	IdleTimeout    time.Duration `envconfig:"DESKTOP_IDLE_TIMEOUT" toml:"idle_timeout"`
	SweepInterval  time.Duration `envconfig:"DESKTOP_SWEEP_INTERVAL" toml:"sweep_interval"`
}

// TerminalConfig holds shell settings.
type TerminalConfig struct {
	Prompt         string `envconfig:"TERMINAL_PROMPT" toml:"prompt"`
	Welcome        bool   `envconfig:"TERMINAL_WELCOME" toml:"welcome"`
	MaxInputLength int    `envconfig:"TERMINAL_MAX_INPUT" toml:"max_input_length"`
}

// ContentConfig points at extra catalog fragments.
type ContentConfig struct {
	Dir string `envconfig:"CONTENT_DIR" toml:"dir"`
}

// StreamConfig holds WebSocket settings.
type StreamConfig struct {
	FrameInterval   time.Duration `envconfig:"STREAM_FRAME_INTERVAL" toml:"frame_interval"`
	WriteTimeout    time.Duration `envconfig:"STREAM_WRITE_TIMEOUT" toml:"write_timeout"`
	PingInterval    time.Duration `envconfig:"STREAM_PING_INTERVAL" toml:"ping_interval"`
	MaxMessageBytes int64         `envconfig:"STREAM_MAX_MESSAGE_BYTES" toml:"max_message_bytes"`
}

// Load builds configuration from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or falls back to defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// MergeFile overlays a TOML file onto cfg. Keys absent from the file keep
// their current values.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Server.Port != "", "server port is empty")
	check(c.Desktop.ViewportWidth > 0 && c.Desktop.ViewportHeight > 0,
		"viewport %dx%d must be positive", c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	check(c.Desktop.MinWidth > 0 && c.Desktop.MinHeight > 0,
		"minimum window size %dx%d must be positive", c.Desktop.MinWidth, c.Desktop.MinHeight)
	check(c.Desktop.WindowWidth >= c.Desktop.MinWidth && c.Desktop.WindowHeight >= c.Desktop.MinHeight,
		"default window size %dx%d is below the minimum", c.Desktop.WindowWidth, c.Desktop.WindowHeight)
	check(c.Terminal.MaxInputLength > 0, "terminal max input length must be positive")
	check(c.Stream.FrameInterval > 0, "stream frame interval must be positive")
	check(!c.RateLimit.Enabled || c.RateLimit.RequestsPerSecond > 0, "rate limit must be positive when enabled")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8000",
			Host:              "0.0.0.0",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			Compression:       true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1440,
			ViewportHeight: 900,
			WindowWidth:    800,
			WindowHeight:   600,
			MinWidth:       300,
			MinHeight:      200,
			BaseZIndex:     1000,
			MaxDesktops:    1000,
			IdleTimeout:    30 * time.Minute,
			SweepInterval:  time.Minute,
		},
		Terminal: TerminalConfig{
			Prompt:         "guest@portfolio:~$ ",
			Welcome:        true,
			MaxInputLength: 1024,
		},
		Stream: StreamConfig{
			FrameInterval:   16 * time.Millisecond,
			WriteTimeout:    5 * time.Second,
			PingInterval:    30 * time.Second,
			MaxMessageBytes: 16 * 1024,
		},
	}
}
