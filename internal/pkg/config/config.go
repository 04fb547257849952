package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	UserService UserServiceConfig
	Mongo       MongoConfig
	Redis       RedisConfig
}

// UserServiceConfig points at the upstream user service the console consumes.
type UserServiceConfig struct {
	BaseURL      string        `env:"USER_SERVICE_URL,     default=http://localhost:9090"`
	ServiceToken string        `env:"USER_SERVICE_TOKEN"`
	Timeout      time.Duration `env:"USER_SERVICE_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	// Enabled toggles the audit trail; the console runs without it.
	Enabled  bool   `env:"MONGO_ENABLED, default=true"`
	URI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,      default=admin_console"`
}

type RedisConfig struct {
	// Enabled toggles the double-submit guard.
	Enabled bool   `env:"REDIS_ENABLED, default=true"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
