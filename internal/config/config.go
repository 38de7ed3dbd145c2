package config

import (
	"errors"
	"holdemshot-server/internal/util"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Hold'em & Shot server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Log    struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	AllowedOrigins  []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	CodeLength      int      `yaml:"codeLength" envconfig:"code_length"`
	FallbackSeconds int      `yaml:"fallbackSeconds" envconfig:"fallback_seconds"`
	Redis           struct {
		URL        string `yaml:"url"`
		Key        string `yaml:"key"`
		MaxRecords int    `yaml:"maxRecords" envconfig:"max_records"`
	} `yaml:"redis"`
}

// Fallback returns how long a queued player waits before facing a bot
func (c Config) Fallback() time.Duration {
	return time.Duration(c.FallbackSeconds) * time.Second
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	c := Config{
		Addr:            ":5000",
		AllowedOrigins:  []string{"*"},
		CodeLength:      5,
		FallbackSeconds: 8,
	}

	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Redis.Key = "holdemshot:games"
	c.Redis.MaxRecords = 1000

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values come from the defaults, then the YAML file, then the environment (including an optional .env file)
func Load() error {
	if err := loadEnvFile(util.Getenv("HOLDEMSHOT_ENV_FILE", ".env")); err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := decodeFile(util.Getenv("HOLDEMSHOT_CONFIG_FILE", "config.yaml"), &cfg); err != nil {
		return err
	}

	if err := envconfig.Process("holdemshot", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// loadEnvFile does not override variables that are already set
func loadEnvFile(filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(filename)
}

// decodeFile is a no-op if the file does not exist
func decodeFile(filename string, cfg *Config) error {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
