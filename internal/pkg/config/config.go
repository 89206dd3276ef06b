package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the base64-encoded HMAC signing key. JWTTTLMillis is the
	// token lifetime in milliseconds.
	JWTSecret    string `env:"JWT_SECRET"`
	JWTTTLMillis int64  `env:"JWT_TTL_MS, default=86400000"`

	// PublicPathPrefixes is a comma-separated list of path prefixes served
	// without authentication. Empty means the built-in defaults.
	PublicPathPrefixes string `env:"PUBLIC_PATH_PREFIXES"`

	BcryptCost int `env:"BCRYPT_COST, default=10"`
	Workers    int `env:"WORKERS,     default=8"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Sentiment SentimentConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gastroreview"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SentimentConfig struct {
	Endpoint string `env:"SENTIMENT_ENDPOINT"`
	Key      string `env:"SENTIMENT_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// PublicPrefixes splits PublicPathPrefixes into a cleaned slice, or nil when
// the variable is unset.
func (c *Config) PublicPrefixes() []string {
	if strings.TrimSpace(c.PublicPathPrefixes) == "" {
		return nil
	}
	parts := strings.Split(c.PublicPathPrefixes, ",")
	prefixes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
