package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TEMPLATESVC_DATABASE_DSN.
const EnvPrefix = "TEMPLATESVC"

// Config holds application level configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Swagger  SwaggerConfig  `mapstructure:"swagger"`
}

// ServerConfig holds the listen port and the graceful shutdown window.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig locates the store. DSN is a file path for sqlite.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LogConfig selects the logrus level and the text or json formatter.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SwaggerConfig overrides the host advertised by the API docs when set.
type SwaggerConfig struct {
	Host string `mapstructure:"host"`
}

var defaults = map[string]any{
	"server.port":                "8080",
	"server.shutdown_timeout":    "10s",
	"database.driver":            "sqlite",
	"database.dsn":               "templates.db",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    25,
	"database.conn_max_lifetime": "5m",
	"log.level":                  "info",
	"log.format":                 "text",
	"swagger.host":               "",
}

// New returns a viper instance with defaults and environment binding set up.
// Callers may bind command line flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes everything into Config.
// An empty configFile searches for templatesvc.yaml in the working directory.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("templatesvc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.DSN == "" {
		return nil, errors.New("database.dsn must not be empty")
	}
	return &cfg, nil
}
