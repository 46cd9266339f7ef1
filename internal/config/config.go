package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by db.driver.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

const envPrefix = "FUELPUMP"

type Config struct {
	Port string     `mapstructure:"port"`
	Log  LogConfig  `mapstructure:"log"`
	DB   DBConfig   `mapstructure:"db"`
	Auth AuthConfig `mapstructure:"auth"`
	HTTP HTTPConfig `mapstructure:"http"`
	WS   WSConfig   `mapstructure:"ws"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type WSConfig struct {
	DefaultInterval time.Duration `mapstructure:"default_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "fuelpumps.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("ws.default_interval", time.Second)
	v.SetDefault("ws.max_interval", 10*time.Second)
}

// Load reads configuration from path, or from configs/config.yml when path
// is empty. A missing default file is not an error; FUELPUMP_* environment
// variables override file values (db.path -> FUELPUMP_DB_PATH).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverBolt:
		if c.DB.Path == "" {
			return fmt.Errorf("db.path is required for driver %q", c.DB.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported db.driver %q (want sqlite, bolt or memory)", c.DB.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.WS.DefaultInterval <= 0 || c.WS.MaxInterval < c.WS.DefaultInterval {
		return errors.New("ws intervals must satisfy 0 < default_interval <= max_interval")
	}
	return nil
}
