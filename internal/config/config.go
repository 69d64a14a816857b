package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Cache    CacheConfig
	MinIO    MinIOConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"mylist"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"mylist"`
	DBName   string `envconfig:"POSTGRES_DB" default:"mylist"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	TokenTTL        time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"1h"`
	EnableTestToken bool          `envconfig:"AUTH_ENABLE_TEST_TOKEN" default:"false"`
	TestUserID      string        `envconfig:"AUTH_TEST_USER_ID" default:"user_12345"`
}

type CacheConfig struct {
	// FirstPageTTL applies to page 1, which is re-requested most often,
	// especially right after a mutation.
	FirstPageTTL time.Duration `envconfig:"CACHE_FIRST_PAGE_TTL" default:"60s"`
	OtherPageTTL time.Duration `envconfig:"CACHE_OTHER_PAGE_TTL" default:"30s"`
	DefaultLimit int           `envconfig:"LIST_DEFAULT_LIMIT" default:"20"`
	MaxLimit     int           `envconfig:"LIST_MAX_LIMIT" default:"50"`
}

type MinIOConfig struct {
	Endpoint        string        `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	PublicEndpoint  string        `envconfig:"MINIO_PUBLIC_ENDPOINT" default:""`
	AccessKey       string        `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey       string        `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket          string        `envconfig:"MINIO_BUCKET" default:"posters"`
	UseSSL          bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	PosterURLExpiry time.Duration `envconfig:"MINIO_POSTER_URL_EXPIRY" default:"15m"`
}

type RabbitMQConfig struct {
	Host      string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port      int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User      string `envconfig:"RABBITMQ_USER" default:"mylist"`
	Password  string `envconfig:"RABBITMQ_PASSWORD" default:"mylist"`
	VHost     string `envconfig:"RABBITMQ_VHOST" default:"/"`
	QueueName string `envconfig:"RABBITMQ_QUEUE" default:"mylist_events"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
