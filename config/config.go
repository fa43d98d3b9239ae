package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string         `yaml:"addr"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Cache    CacheConfig    `yaml:"cache"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite3 | pgx
	DSN    string `yaml:"dsn"`
	// Migrations is an optional directory of extra .sql migrations
	Migrations string `yaml:"migrations"`
}

type SessionConfig struct {
	Store      string        `yaml:"store"` // memory | sqlite
	Lifetime   time.Duration `yaml:"lifetime"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

// CacheConfig enables the topic list cache when Type is set
type CacheConfig struct {
	Type          string `yaml:"type"` // "" | redis
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "./forum.db",
		},
		Session: SessionConfig{
			Store:      "memory",
			Lifetime:   24 * time.Hour,
			CookieName: "session_id",
		},
		Cache: CacheConfig{
			RedisAddr: "localhost:6379",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when empty), then a .env file, then FORUM_* environment variables.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, "FORUM_ADDR")
	setString(&cfg.Database.Driver, "FORUM_DB_DRIVER")
	setString(&cfg.Database.DSN, "FORUM_DB_DSN")
	setString(&cfg.Database.Migrations, "FORUM_DB_MIGRATIONS")
	setString(&cfg.Session.Store, "FORUM_SESSION_STORE")
	setString(&cfg.Session.CookieName, "FORUM_SESSION_COOKIE")
	setString(&cfg.Cache.Type, "FORUM_CACHE_TYPE")
	setString(&cfg.Cache.RedisAddr, "FORUM_REDIS_ADDR")
	setString(&cfg.Cache.RedisPassword, "FORUM_REDIS_PASSWORD")

	if v := os.Getenv("FORUM_SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FORUM_SESSION_LIFETIME: %w", err)
		}
		cfg.Session.Lifetime = d
	}
	if v := os.Getenv("FORUM_SESSION_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORUM_SESSION_SECURE: %w", err)
		}
		cfg.Session.Secure = b
	}
	if v := os.Getenv("FORUM_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FORUM_REDIS_DB: %w", err)
		}
		cfg.Cache.RedisDB = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	switch c.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	// go-utils migrations bind with "?" placeholders, which postgres rejects
	if c.Database.Migrations != "" && c.Database.Driver != "sqlite3" {
		return errors.New("database migrations need the sqlite3 database driver")
	}
	switch c.Session.Store {
	case "memory":
	case "sqlite":
		if c.Database.Driver != "sqlite3" {
			return errors.New("sqlite session store needs the sqlite3 database driver")
		}
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	if c.Session.Lifetime <= 0 {
		return errors.New("session lifetime must be positive")
	}
	switch c.Cache.Type {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache type %q", c.Cache.Type)
	}
	return nil
}
