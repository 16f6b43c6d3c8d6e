// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one is present), maps them into structured Go types, and
// validates that required values are present so the service fails
// fast on bad or missing configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into the Config struct tree.
//   - Validate required values.
//   - Provide defaults for optional blocks (posts, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before
	// anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the POSTS_ prefix. Keys are lowercased with
	the prefix removed, and "." separates nesting levels:

		POSTS_SERVER.PORT         -> server.port         -> Config.Server.Port
		POSTS_POSTS.MAX_BATCH_SIZE -> posts.max_batch_size -> Config.Posts.MaxBatchSize
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "POSTS_"

// DefaultMaxBatchSize caps how many posts POST /api/post/:num may ask for
// when posts.max_batch_size is not configured.
const DefaultMaxBatchSize = 100

// Config is the root configuration object for the application.
//
// Observability and Posts are optional; defaults are injected after
// validation when they are missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Posts         PostsConfig          `koanf:"posts"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// PostsConfig tunes the posts API.
type PostsConfig struct {
	// MaxBatchSize is the largest :num accepted by the count gate.
	MaxBatchSize int `koanf:"max_batch_size" validate:"omitempty,min=1"`
}

// LoadConfig reads the environment, unmarshals it into Config, validates
// it and applies defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills optional blocks. Service name and environment of the
// observability block are always derived, never configured.
func (c *Config) applyDefaults() {
	if c.Posts.MaxBatchSize == 0 {
		c.Posts.MaxBatchSize = DefaultMaxBatchSize
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}
