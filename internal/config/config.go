package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBDriver       string        `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseDSN    string        `env:"DATABASE_DSN" envDefault:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"`
	DBWaitRetries  uint64        `env:"DB_WAIT_RETRIES" envDefault:"30"`
	DBWaitInterval time.Duration `env:"DB_WAIT_INTERVAL" envDefault:"1s"`
	ResetDB        bool          `env:"RESET_DB" envDefault:"false"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TokenCacheTTL time.Duration `env:"TOKEN_CACHE_TTL" envDefault:"10m"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	MediaRoot      string `env:"MEDIA_ROOT" envDefault:"./media"`
	MediaURL       string `env:"MEDIA_URL" envDefault:"/media"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	S3 S3Config

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// S3Config configures the S3 compatible image store (AWS S3 or MinIO).
type S3Config struct {
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Bucket          string `env:"S3_BUCKET" envDefault:"recipe-images"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	UseSSL          bool   `env:"S3_USE_SSL" envDefault:"false"`
	PublicURL       string `env:"S3_PUBLIC_URL"`
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use mysql or postgres)", c.DBDriver)
	}

	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.S3.Endpoint == "" || c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "" {
			return fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q (use local or s3)", c.StorageBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
