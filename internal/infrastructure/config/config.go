package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// minSecretLength is the minimum acceptable signing-secret length; anything
// shorter makes HS256 brute-forceable.
const minSecretLength = 32

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTLMinutes is the session-token lifetime.
	TokenTTLMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`

	Mongo    MongoConfig
	Redis    RedisConfig
	External ExternalConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=users_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ExternalConfig struct {
	BaseURL         string `env:"EXTERNAL_API_BASE_URL, default=https://api-onecloud.multicloud.tivit.com/fake"`
	Username        string `env:"EXTERNAL_API_USERNAME"`
	Password        string `env:"EXTERNAL_API_PASSWORD"`
	TimeoutSeconds  int    `env:"EXTERNAL_API_TIMEOUT_SECONDS, default=10"`
	TokenTTLSeconds int    `env:"EXTERNAL_TOKEN_TTL_SECONDS,   default=300"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it. Startup aborts on invalid configuration.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return &cfg
}

// Validate enforces the startup invariants the rest of the service relies on.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.External.BaseURL == "" {
		return fmt.Errorf("EXTERNAL_API_BASE_URL must be set")
	}
	return nil
}

// TokenTTL returns the session-token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Timeout returns the downstream request timeout as a duration.
func (e ExternalConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// TokenTTL returns the fallback downstream credential lifetime, used when the
// issuer response does not carry its own expiry.
func (e ExternalConfig) TokenTTL() time.Duration {
	return time.Duration(e.TokenTTLSeconds) * time.Second
}
