package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type AuthConfig struct {
	// Password is the shared application password. It may be a bcrypt hash
	// ("$2..." prefix) or a plaintext value; login handles both. Normally
	// supplied via INVESTOR_APP_PASSWORD rather than the YAML file.
	Password string `mapstructure:"password"`
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	TTLDays    int    `mapstructure:"ttl_days"`
}

type ScraperConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Session  SessionConfig  `mapstructure:"session"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SessionTTL returns the configured session lifetime, defaulting to 30 days.
func (c *Config) SessionTTL() time.Duration {
	days := c.Session.TTLDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// CookieName returns the session cookie name, defaulting to "investor_session".
func (c *Config) CookieName() string {
	if c.Session.CookieName == "" {
		return "investor_session"
	}
	return c.Session.CookieName
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. INVESTOR_APP_PASSWORD=secret
		v.SetEnvPrefix("INVESTOR")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		// the shared password comes from the environment, not the YAML file
		if pw := v.GetString("app_password"); pw != "" {
			c.Auth.Password = pw
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
