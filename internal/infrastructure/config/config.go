package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Channels ChannelsConfig
	Scraper  ScraperConfig
	Mappings MappingsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// ChannelsConfig holds per-channel credential configuration. Secrets maps a
// platform code to that channel's encrypted credential blob; SecretKey is the
// key the blobs were sealed with.
type ChannelsConfig struct {
	// SecretKey decrypts the per-channel secret blobs
	SecretKey string
	// Secrets maps platform code (e.g. "ABLY") to an encrypted blob
	Secrets map[string]string
	// AblyBaseURL overrides the production Ably endpoint, for staging
	AblyBaseURL string
	// ZigzagBaseURL overrides the production Zigzag endpoint, for staging
	ZigzagBaseURL string
}

// ScraperConfig holds browser-automation settings for the scrape target.
type ScraperConfig struct {
	Enabled bool
	// Headed launches a visible browser for local debugging
	Headed            bool
	NoSandbox         bool
	EntryURL          string
	LoginEndpoint     string
	ShopDomain        string
	UserID            string
	Password          string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	MaxPages          int
}

// MappingsConfig holds the SKU mapping source.
type MappingsConfig struct {
	// File is a JSON file with the curated platform-to-ERP SKU mappings
	File string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SELLERBRIDGE_ prefix (e.g., SELLERBRIDGE_CHANNELS_SECRET_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("SELLERBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Channels: ChannelsConfig{
			SecretKey:     v.GetString("channels.secret_key"),
			Secrets:       v.GetStringMapString("channels.secrets"),
			AblyBaseURL:   v.GetString("channels.ably_base_url"),
			ZigzagBaseURL: v.GetString("channels.zigzag_base_url"),
		},
		Scraper: ScraperConfig{
			Enabled:           v.GetBool("scraper.enabled"),
			Headed:            v.GetBool("scraper.headed"),
			NoSandbox:         v.GetBool("scraper.no_sandbox"),
			EntryURL:          v.GetString("scraper.entry_url"),
			LoginEndpoint:     v.GetString("scraper.login_endpoint"),
			ShopDomain:        v.GetString("scraper.shop_domain"),
			UserID:            v.GetString("scraper.user_id"),
			Password:          v.GetString("scraper.password"),
			NavigationTimeout: v.GetDuration("scraper.navigation_timeout"),
			SettleDelay:       v.GetDuration("scraper.settle_delay"),
			MaxPages:          v.GetInt("scraper.max_pages"),
		},
		Mappings: MappingsConfig{
			File: v.GetString("mappings.file"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sellerbridge-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.Channels.Secrets == nil {
		cfg.Channels.Secrets = map[string]string{}
	}
	// Development convenience only; production requires an explicit key.
	if cfg.Channels.SecretKey == "" && cfg.App.Env != "production" {
		cfg.Channels.SecretKey = "dev-secret-key-do-not-use-in-production"
	}
	if cfg.Scraper.NavigationTimeout == 0 {
		cfg.Scraper.NavigationTimeout = 30 * time.Second
	}
	if cfg.Scraper.SettleDelay == 0 {
		cfg.Scraper.SettleDelay = 2 * time.Second
	}
	if cfg.Scraper.MaxPages == 0 {
		cfg.Scraper.MaxPages = 20
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Scraper.Enabled {
		if c.Scraper.EntryURL == "" {
			return fmt.Errorf("scraper.entry_url is required when the scraper is enabled")
		}
		if c.Scraper.ShopDomain == "" || c.Scraper.UserID == "" || c.Scraper.Password == "" {
			return fmt.Errorf("scraper credentials (shop_domain, user_id, password) are required when the scraper is enabled")
		}
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Channels.SecretKey == "" {
			return fmt.Errorf("channels.secret_key is required in production")
		}
		if len(c.Channels.SecretKey) < 32 {
			return fmt.Errorf("channels.secret_key must be at least 32 characters in production")
		}
	}

	return nil
}
