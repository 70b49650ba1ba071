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

	Mongo      MongoConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Storage    StorageConfig
	Session    SessionConfig
	Newsletter NewsletterConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bacheca"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@bacheca-annunci.it"`
}

type StorageConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY, default=minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY, default=minioadmin"`
	Bucket    string `env:"MINIO_BUCKET,     default=uploads"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
	PublicURL string `env:"MINIO_PUBLIC_URL, default=http://localhost:9000"`
}

type SessionConfig struct {
	// TouchDebounce is the quiet window that coalesces activity pings into
	// a single session refresh.
	TouchDebounce time.Duration `env:"SESSION_TOUCH_DEBOUNCE, default=5s"`
}

type NewsletterConfig struct {
	// SendDelay is the pause between consecutive sends of one batch.
	SendDelay    time.Duration `env:"NEWSLETTER_SEND_DELAY,    default=100ms"`
	DashboardURL string        `env:"NEWSLETTER_DASHBOARD_URL, default=http://localhost:8080/dashboard"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
