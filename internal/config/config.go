package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	// MaxUploadBytes caps one audio upload.
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

type MetricsConfig struct {
	// Addr serves /metrics on a separate listener when set; the main router also exposes it.
	Addr string `yaml:"addr"`
}

type GenerationConfig struct {
	// Provider is one of "gemini", "openai", "mock".
	Provider      string   `yaml:"provider"`
	Model         string   `yaml:"model"`
	OpenAIBaseURL string   `yaml:"openai_base_url"`
	Timeout       Duration `yaml:"timeout"`
}

type SessionConfig struct {
	// Store is "memory" or "redis".
	Store         string   `yaml:"store"`
	TTL           Duration `yaml:"ttl"`
	RedisAddr     string   `yaml:"redis_addr"`
	RedisDB       int      `yaml:"redis_db"`
	RedisPassword string   `yaml:"-"`
	KeyPrefix     string   `yaml:"key_prefix"`
}

// AuthConfig secrets are only read from the environment.
type AuthConfig struct {
	DefaultAPIKey  string   `yaml:"-"`
	PasswordHashes []string `yaml:"-"`
	JWTSecret      string   `yaml:"-"`
	TokenTTL       Duration `yaml:"token_ttl"`
}

type Config struct {
	Env        string           `yaml:"env"`
	Version    string           `yaml:"version"`
	HTTP       HTTPConfig       `yaml:"http"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Generation GenerationConfig `yaml:"generation"`
	Session    SessionConfig    `yaml:"session"`
	Auth       AuthConfig       `yaml:"auth"`
}
