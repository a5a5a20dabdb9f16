package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL         string `mapstructure:"BASE_URL"`
	DBType          string `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql, redis, memory
	DSN             string `mapstructure:"DSN"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Port            int    `mapstructure:"PORT"`
	SessionTTLMin   int    `mapstructure:"SESSION_TTL_MINUTES"`
	StatsTTLMin     int    `mapstructure:"STATS_TTL_MINUTES"`
	FetchDelayMs    int    `mapstructure:"FETCH_DELAY_MS"`
	MockSecret      string `mapstructure:"MOCK_SECRET"`
	SkipAutoMigrate bool   `mapstructure:"SKIP_AUTO_MIGRATE"`
}

// SessionTTL is the lifetime of a cached platform session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// StatsTTL is the lifetime of cached question-filter statistics.
func (c *Config) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLMin) * time.Minute
}

// FetchDelay is the pause inserted between consecutive remote requests.
func (c *Config) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("BASE_URL", "https://platform.invalid")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "matchboard.db") // Default to sqlite if not provided
	viper.SetDefault("SESSION_TTL_MINUTES", 360)
	viper.SetDefault("STATS_TTL_MINUTES", 7*24*60)
	viper.SetDefault("FETCH_DELAY_MS", 500)
	viper.SetDefault("MOCK_SECRET", "mock-platform-secret")
	viper.SetDefault("SKIP_AUTO_MIGRATE", false)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
