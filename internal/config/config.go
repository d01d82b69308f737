package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUOTESTUDIO_"

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreS3     = "s3"
	StoreNull   = "null"
)

// AI providers.
const (
	AIGemini = "gemini"
	AINone   = "none"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	S3        S3Config        `yaml:"s3"`
	AI        AIConfig        `yaml:"ai"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how MCP clients connect: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// StoreConfig selects where workspaces are persisted.
type StoreConfig struct {
	Backend   string        `yaml:"backend"`
	SaveDelay time.Duration `yaml:"save_delay"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type AIConfig struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		DB: DBConfig{
			Path: "quotestudio.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Backend:   StoreSQLite,
			SaveDelay: time.Second,
		},
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "quotestudio",
		},
		AI: AIConfig{
			Provider: AINone,
			Model:    "gemini-3-pro-preview",
			Timeout:  60 * time.Second,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// A key on its own is enough to turn suggestions on.
	if cfg.AI.APIKey != "" && os.Getenv(EnvPrefix+"AI_PROVIDER") == "" && cfg.AI.Provider == AINone {
		cfg.AI.Provider = AIGemini
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings and backend requirements.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Backend {
	case StoreSQLite, StoreNull:
	case StoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("store backend s3 requires s3.bucket")
		}
	default:
		return fmt.Errorf("invalid store backend %q", c.Store.Backend)
	}
	switch c.AI.Provider {
	case AINone:
	case AIGemini:
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai provider gemini requires an api key")
		}
	default:
		return fmt.Errorf("invalid ai provider %q", c.AI.Provider)
	}
	if c.Store.SaveDelay < 0 {
		return fmt.Errorf("store.save_delay must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	if err := setInt(&cfg.Server.Port, "SERVER_PORT"); err != nil {
		return err
	}
	setString(&cfg.Transport.Mode, "TRANSPORT")
	if err := setBool(&cfg.Auth.Enabled, "AUTH_ENABLED"); err != nil {
		return err
	}
	setString(&cfg.DB.Path, "DB_PATH")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Path, "LOG_PATH")

	setString(&cfg.Store.Backend, "STORE_BACKEND")
	if err := setDuration(&cfg.Store.SaveDelay, "STORE_SAVE_DELAY"); err != nil {
		return err
	}

	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Prefix, "S3_PREFIX")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	setString(&cfg.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")

	setString(&cfg.AI.Provider, "AI_PROVIDER")
	setString(&cfg.AI.APIKey, "AI_API_KEY")
	setString(&cfg.AI.Model, "AI_MODEL")
	return setDuration(&cfg.AI.Timeout, "AI_TIMEOUT")
}

func setString(dst *string, name string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*dst = v
	}
}

func setInt(dst *int, name string) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, name string) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, name string) error {
	v := os.Getenv(EnvPrefix + name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
	}
	*dst = d
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
