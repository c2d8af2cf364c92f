package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	StoreDriver       string        `toml:"store_driver" validate:"required,oneof=postgres mongo"`
	DatabaseURL       string        `toml:"database_url" validate:"required_if=StoreDriver postgres"`
	MongoDBURI        string        `toml:"mongodb_uri" validate:"required_if=StoreDriver mongo"`
	MongoDBName       string        `toml:"mongodb_name" validate:"required_if=StoreDriver mongo"`
	ServerPort        string        `toml:"server_port" validate:"required"`
	Timezone          string        `toml:"timezone" validate:"required"`
	PollInterval      time.Duration `toml:"poll_interval" validate:"min=1s"`
	ChatRatePerMinute int           `toml:"chat_rate_per_minute" validate:"min=1"`
	CORSOrigins       []string      `toml:"cors_origins" validate:"min=1"`
	LogLevel          string        `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	location *time.Location
}

func defaults() *Config {
	return &Config{
		StoreDriver:       DriverPostgres,
		ServerPort:        ":8080",
		Timezone:          "UTC",
		PollInterval:      30 * time.Second,
		ChatRatePerMinute: 20,
		CORSOrigins:       []string{"*"},
		LogLevel:          "info",
	}
}

// LoadConfig builds the configuration from defaults, an optional TOML file
// named by CONFIG_FILE, and environment variables (optionally from .env),
// in increasing order of precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	return config, config.validate()
}

func applyEnv(config *Config) error {
	setString(&config.StoreDriver, "STORE_DRIVER")
	setString(&config.DatabaseURL, "DATABASE_URL")
	setString(&config.MongoDBURI, "MONGODB_URI")
	setString(&config.MongoDBName, "MONGODB_NAME")
	setString(&config.ServerPort, "SERVER_PORT")
	setString(&config.Timezone, "TIMEZONE")
	setString(&config.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid POLL_INTERVAL %q", v)
		}
		config.PollInterval = d
	}

	if v := os.Getenv("CHAT_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid CHAT_RATE_PER_MINUTE %q", v)
		}
		config.ChatRatePerMinute = n
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		config.CORSOrigins = splitList(v)
	}

	return nil
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "failed to validate config")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid timezone %q", c.Timezone)
	}
	c.location = loc

	return nil
}

// Location returns the timezone night windows and daily buckets are computed in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
