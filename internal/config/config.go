package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything the fleetwatch HTTP API needs.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     struct {
		// Token is the static bearer credential required on every route
		// except /health. Empty disables the check (local dev).
		Token string `yaml:"token"`
	} `yaml:"auth"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MaxIdle  int    `yaml:"max_idle"`
}

// Load builds the config from environment variables. If CONFIG_FILE
// points at a YAML file it is read first and env vars overlay it, so a
// plain `go run` with nothing set still comes up on localhost defaults.
func Load() *Config {
	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(raw, cfg)
		}
	}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", orDefault(cfg.HTTP.Addr, ":8080"))

	cfg.Database.Host = getEnv("DB_HOST", orDefault(cfg.Database.Host, "localhost"))
	cfg.Database.Port = parseInt(getEnv("DB_PORT", ""), orDefaultInt(cfg.Database.Port, 5432))
	cfg.Database.User = getEnv("DB_USER", orDefault(cfg.Database.User, "postgres"))
	cfg.Database.Password = getEnv("DB_PASSWORD", orDefault(cfg.Database.Password, "postgres"))
	cfg.Database.Database = getEnv("DB_NAME", orDefault(cfg.Database.Database, "iot_fleet"))
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", orDefault(cfg.Database.SSLMode, "disable"))
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", ""), orDefaultInt(cfg.Database.MaxConns, 10))
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", ""), orDefaultInt(cfg.Database.MaxIdle, 5))

	cfg.Auth.Token = getEnv("API_TOKEN", cfg.Auth.Token)

	cfg.Log.Level = getEnv("LOG_LEVEL", orDefault(cfg.Log.Level, "info"))
	cfg.Log.Format = getEnv("LOG_FORMAT", orDefault(cfg.Log.Format, "json"))

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orDefaultInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
