package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/adisonshadow/adb/internal/logging"
)

// FileName is the configuration file looked up in the working directory
const FileName = "adb.yaml"

// EnvPrefix prefixes environment overrides, e.g. ADB_DATABASE_URL
const EnvPrefix = "ADB"

// Config represents the adb configuration
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
}

// DatabaseConfig selects where enumeration records are stored
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

// RedisConfig configures the enum record cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// DefinitionsConfig points at the YAML definition files
type DefinitionsConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig represents introspection server configuration
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Drivers lists the database/sql drivers the adb binary registers
var Drivers = []string{"sqlite3", "pgx", "postgres"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "adb.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "adb:enum:")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("definitions.dir", "definitions")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads the configuration. An empty path looks for adb.yaml in the
// working directory and falls back to defaults when there is none; an
// explicit path must exist. ADB_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject reports whether dir holds an adb.yaml or a definitions directory
func InProject(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, "definitions"))
	return err == nil && info.IsDir()
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	known := false
	for _, d := range Drivers {
		if cfg.Database.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("database.driver must be one of %s, got: %s", strings.Join(Drivers, ", "), cfg.Database.Driver)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url must not be empty")
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative, got: %s", cfg.Redis.TTL)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LoggingOptions converts the log section to logger options
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Development: c.Log.Development}
}
