package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/filmfusion/internal/adapter/firebase"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Cache    CacheConfig    `mapstructure:"cache"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FirebaseConfig holds the hosted backend settings
type FirebaseConfig struct {
	APIKey       string        `mapstructure:"api_key"`    // Web API key of the project
	ProjectID    string        `mapstructure:"project_id"` // Firestore project
	FirestoreURL string        `mapstructure:"firestore_url"`
	AuthURL      string        `mapstructure:"auth_url"`
	TokenURL     string        `mapstructure:"token_url"`
	Timeout      time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	HomeTopRated int `mapstructure:"home_top_rated"` // Cards in the "Top Rated" row
	HomeLatest   int `mapstructure:"home_latest"`    // Cards in the "Latest" row

	PosterCommand string   `mapstructure:"poster_command"` // Viewer for poster URLs, empty for system default
	PosterArgs    []string `mapstructure:"poster_args"`    // Extra viewer arguments
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Firebase: FirebaseConfig{
			FirestoreURL: "https://firestore.googleapis.com",
			AuthURL:      "https://identitytoolkit.googleapis.com",
			TokenURL:     "https://securetoken.googleapis.com",
			Timeout:      30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
		},
		UI: UIConfig{
			HomeTopRated: 5,
			HomeLatest:   8,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Backend converts the firebase section into the REST client settings
func (c *Config) Backend() firebase.Config {
	return firebase.Config{
		APIKey:       c.Firebase.APIKey,
		ProjectID:    c.Firebase.ProjectID,
		FirestoreURL: c.Firebase.FirestoreURL,
		AuthURL:      c.Firebase.AuthURL,
		TokenURL:     c.Firebase.TokenURL,
		Timeout:      c.Firebase.Timeout,
	}
}

// CacheDir returns the cache directory, or "" when caching is disabled
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	return expandHome(c.Cache.Dir)
}

// IsConfigured returns true if the API key and project id are set
func (c *Config) IsConfigured() bool {
	return c.Firebase.APIKey != "" && c.Firebase.ProjectID != ""
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmfusion", "filmfusion.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmfusion", "filmfusion.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmfusion")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "filmfusion")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "filmfusion", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmfusion", "cache")
	}
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("firebase.api_key", cfg.Firebase.APIKey)
	v.SetDefault("firebase.project_id", cfg.Firebase.ProjectID)
	v.SetDefault("firebase.firestore_url", cfg.Firebase.FirestoreURL)
	v.SetDefault("firebase.auth_url", cfg.Firebase.AuthURL)
	v.SetDefault("firebase.token_url", cfg.Firebase.TokenURL)
	v.SetDefault("firebase.timeout", cfg.Firebase.Timeout)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)

	v.SetDefault("ui.home_top_rated", cfg.UI.HomeTopRated)
	v.SetDefault("ui.home_latest", cfg.UI.HomeLatest)
	v.SetDefault("ui.poster_command", cfg.UI.PosterCommand)
	v.SetDefault("ui.poster_args", cfg.UI.PosterArgs)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. FILMFUSION_FIREBASE_API_KEY
	v.SetEnvPrefix("FILMFUSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("firebase.api_key", cfg.Firebase.APIKey)
	v.Set("firebase.project_id", cfg.Firebase.ProjectID)
	v.Set("firebase.firestore_url", cfg.Firebase.FirestoreURL)
	v.Set("firebase.auth_url", cfg.Firebase.AuthURL)
	v.Set("firebase.token_url", cfg.Firebase.TokenURL)
	v.Set("firebase.timeout", cfg.Firebase.Timeout.String())

	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("ui.home_top_rated", cfg.UI.HomeTopRated)
	v.Set("ui.home_latest", cfg.UI.HomeLatest)
	v.Set("ui.poster_command", cfg.UI.PosterCommand)
	v.Set("ui.poster_args", cfg.UI.PosterArgs)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	cachePath := expandHome(cfg.Cache.Dir)
	if cachePath == "" {
		return nil
	}
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
