package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config.yml"

// Field-name uniqueness scopes. Source deployments disagree on whether a field
// name is unique per collection or across all collections, so it is an
// explicit configuration choice.
const (
	FieldScopeCollection = "collection"
	FieldScopeGlobal     = "global"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment-variable overrides. Unknown YAML keys and extra environment
// variables are tolerated.
type AppConfig struct {
	Port           int        `yaml:"port"`
	DSN            string     `yaml:"dsn"` // MySQL DSN
	RedisURL       string     `yaml:"redis_url"`
	Env            string     `yaml:"env"` // "development" | "production"
	JWTSecret      string     `yaml:"jwt_secret"`
	AllowedOrigins []string   `yaml:"allowed_origins"`
	FieldNameScope string     `yaml:"field_name_scope"`
	Pool           PoolConfig `yaml:"pool"`
}

// PoolConfig bounds the shared connection pool to the store.
type PoolConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Load reads the YAML config file (optional) and applies env overrides and
// defaults. A missing file is not an error; a missing DSN is.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required (config file or CMS_DSN)")
	}
	if cfg.FieldNameScope != FieldScopeCollection && cfg.FieldNameScope != FieldScopeGlobal {
		return nil, fmt.Errorf("field_name_scope must be %q or %q, got %q",
			FieldScopeCollection, FieldScopeGlobal, cfg.FieldNameScope)
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("CMS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("CMS_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("CMS_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("CMS_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("CMS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CMS_FIELD_NAME_SCOPE"); v != "" {
		cfg.FieldNameScope = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	if cfg.FieldNameScope == "" {
		cfg.FieldNameScope = FieldScopeCollection
	}
	if cfg.Pool.MaxOpenConns == 0 {
		cfg.Pool.MaxOpenConns = 30
	}
	if cfg.Pool.MaxIdleConns == 0 {
		cfg.Pool.MaxIdleConns = 20
	}
	if cfg.Pool.ConnMaxLifetime == 0 {
		cfg.Pool.ConnMaxLifetime = 30 * time.Minute
	}
}
