package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/speechcoach-backend/internal/platform/envutil"
)

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if dd, err := time.ParseDuration(s); err == nil {
		d.Duration = dd
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int of seconds: %w", err)
	}
	d.Duration = time.Duration(n) * time.Second
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func Default() *Config {
	return &Config{
		Env:     "development",
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxUploadBytes:    25 << 20,
			CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Generation: GenerationConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  Duration{Duration: 3 * time.Minute},
		},
		Session: SessionConfig{
			Store:     "memory",
			TTL:       Duration{Duration: 2 * time.Hour},
			RedisAddr: "localhost:6379",
			KeyPrefix: "speechcoach:session:",
		},
		Auth: AuthConfig{
			TokenTTL: Duration{Duration: 12 * time.Hour},
		},
	}
}

// Load applies defaults, then the optional YAML file, then environment overrides, then validates.
func Load() (*Config, error) {
	cfg := Default()

	cfgPath := envutil.String("SPEECHCOACH_CONFIG", "")
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "speechcoach.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.Version = envutil.String("APP_VERSION", cfg.Version)
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if v := envutil.String("PORT", ""); v != "" && os.Getenv("HTTP_ADDR") == "" {
		cfg.HTTP.Addr = ":" + v
	}
	if origins := envutil.List("CORS_ORIGINS"); len(origins) > 0 {
		cfg.HTTP.CORSOrigins = origins
	}
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr)

	cfg.Generation.Provider = envutil.String("GENERATION_PROVIDER", cfg.Generation.Provider)
	cfg.Generation.Model = envutil.String("GENERATION_MODEL", cfg.Generation.Model)
	cfg.Generation.OpenAIBaseURL = envutil.String("OPENAI_BASE_URL", cfg.Generation.OpenAIBaseURL)
	cfg.Generation.Timeout.Duration = envutil.Duration("GENERATION_TIMEOUT", cfg.Generation.Timeout.Duration)

	cfg.Session.Store = envutil.String("SESSION_STORE", cfg.Session.Store)
	cfg.Session.TTL.Duration = envutil.Duration("SESSION_TTL", cfg.Session.TTL.Duration)
	cfg.Session.RedisAddr = envutil.String("REDIS_ADDR", cfg.Session.RedisAddr)
	cfg.Session.RedisDB = envutil.Int("REDIS_DB", cfg.Session.RedisDB)
	cfg.Session.RedisPassword = envutil.String("REDIS_PASSWORD", "")

	cfg.Auth.DefaultAPIKey = envutil.String("GEMINI_API_KEY", "")
	cfg.Auth.PasswordHashes = envutil.List("ACCESS_PASSWORD_HASHES")
	cfg.Auth.JWTSecret = envutil.String("JWT_SECRET_KEY", "")
	cfg.Auth.TokenTTL.Duration = envutil.Duration("SESSION_TOKEN_TTL", cfg.Auth.TokenTTL.Duration)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		c.HTTP.MaxUploadBytes = 25 << 20
	}
	if c.HTTP.ShutdownTimeout.Duration <= 0 {
		c.HTTP.ShutdownTimeout.Duration = 15 * time.Second
	}

	c.Generation.Provider = strings.ToLower(strings.TrimSpace(c.Generation.Provider))
	switch c.Generation.Provider {
	case "":
		c.Generation.Provider = "gemini"
	case "gemini", "openai", "mock":
	default:
		return fmt.Errorf("invalid generation.provider=%q", c.Generation.Provider)
	}

	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	switch c.Session.Store {
	case "":
		c.Session.Store = "memory"
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Session.RedisAddr) == "" {
			return errors.New("session.redis_addr is required for the redis store")
		}
	default:
		return fmt.Errorf("invalid session.store=%q", c.Session.Store)
	}
	if c.Session.TTL.Duration <= 0 {
		return errors.New("session.ttl must be positive")
	}

	if c.Auth.TokenTTL.Duration <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if len(c.Auth.PasswordHashes) > 0 && c.Auth.DefaultAPIKey == "" {
		return errors.New("ACCESS_PASSWORD_HASHES requires GEMINI_API_KEY")
	}
	if c.Auth.JWTSecret == "" {
		if isProduction(c.Env) {
			return errors.New("JWT_SECRET_KEY is required in production")
		}
		c.Auth.JWTSecret = "development-only-secret"
	}
	return nil
}

func isProduction(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	}
	return false
}
