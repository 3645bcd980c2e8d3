package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/kinoart/internal/options"
	"github.com/mmcdole/kinoart/internal/transition"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Download   DownloadConfig   `mapstructure:"download"`
	Transition TransitionConfig `mapstructure:"transition"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds media server configuration
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // Server URL, also the cache namespace
	Token string `mapstructure:"token"` // Plex token sent with image requests
}

// CacheConfig holds image cache configuration
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`         // Empty = memory only
	MemoryOnly bool   `mapstructure:"memory_only"` // Never write downloads to disk
}

// DownloadConfig holds downloader configuration
type DownloadConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// TransitionConfig holds the default presentation effect for downloads
type TransitionConfig struct {
	Style    string        `mapstructure:"style"`    // "none", "fade", "flip-left", ...
	Duration time.Duration `mapstructure:"duration"` // e.g. "250ms"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Download: DownloadConfig{
			Timeout: 30 * time.Second,
		},
		Transition: TransitionConfig{
			Style:    "fade",
			Duration: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kinoart", "kinoart.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "kinoart", "kinoart.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "kinoart")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "kinoart")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "kinoart", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "kinoart", "cache")
	}
}

func newViper(configDirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configDirs) == 0 {
		configDirs = []string{defaultConfigPath(), "."}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides (KINOART_SERVER_TOKEN, ...)
	v.SetEnvPrefix("KINOART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about
	d := DefaultConfig()
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.token", d.Server.Token)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_only", d.Cache.MemoryOnly)
	v.SetDefault("download.timeout", d.Download.Timeout)
	v.SetDefault("transition.style", d.Transition.Style)
	v.SetDefault("transition.duration", d.Transition.Duration)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
	return v
}

// LoadConfig loads configuration from file and environment. configDirs
// overrides the search path (default: ~/.config/kinoart, then ".").
func LoadConfig(configDirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(configDirs...)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if _, err := transition.ParseStyle(cfg.Transition.Style); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in dir (default: ~/.config/kinoart)
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = defaultConfigPath()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.memory_only", cfg.Cache.MemoryOnly)
	v.Set("download.timeout", cfg.Download.Timeout.String())
	v.Set("transition.style", cfg.Transition.Style)
	v.Set("transition.duration", cfg.Transition.Duration.String())
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultOptions maps config settings onto the options list every
// retrieval starts from. Call-site options are placed ahead of these.
func (c *Config) DefaultOptions() options.Info {
	var info options.Info

	if c.Cache.MemoryOnly {
		info = append(info, options.Behavior{Flags: options.CacheMemoryOnly})
	}

	// Already validated in LoadConfig
	style, _ := transition.ParseStyle(c.Transition.Style)
	switch style {
	case transition.StyleNone:
	case transition.StyleFade:
		info = append(info, options.Transition{Effect: transition.Fade(c.Transition.Duration)})
	default:
		info = append(info, options.Transition{Effect: transition.Flip(style, c.Transition.Duration)})
	}

	return info
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
