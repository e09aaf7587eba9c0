package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	HTTPAddr           string   `yaml:"http_addr"`
	GRPCAddr           string   `yaml:"grpc_addr"`
	LogLevel           string   `yaml:"log_level"`
	GinMode            string   `yaml:"gin_mode"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_sec"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

func (c AppConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// Config — все настройки сервиса.
type Config struct {
	App AppConfig `yaml:"app"`
	DB  DBConfig  `yaml:"db"`
}

func defaultConfig() Config {
	return Config{
		App: AppConfig{
			HTTPAddr:           ":8080",
			GRPCAddr:           ":50051",
			LogLevel:           "info",
			GinMode:            "release",
			ShutdownTimeoutSec: 10,
			CORSAllowedOrigins: []string{"*"},
		},
		DB: defaultDBConfig(),
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл из
// CONFIG_FILE (если задан), затем переменные окружения. Файл .env
// (или ENV_FILE) подгружается в окружение, если существует.
func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := defaultConfig()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.App.applyEnv()
	cfg.DB.applyEnv()

	if err := cfg.App.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.GRPCAddr = getEnv("GRPC_ADDR", c.GRPCAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.ShutdownTimeoutSec = getEnvInt("SHUTDOWN_TIMEOUT_SEC", c.ShutdownTimeoutSec)

	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}
}

func (c *AppConfig) validate() error {
	if c.HTTPAddr == "" || c.GRPCAddr == "" {
		return fmt.Errorf("invalid app config: http/grpc addr must not be empty")
	}
	if c.ShutdownTimeoutSec <= 0 {
		return fmt.Errorf("invalid app config: shutdown timeout must be positive")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
