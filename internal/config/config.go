package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Worker   WorkerConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Lock     LockConfig
	Media    MediaConfig
	Breaker  BreakerConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type HTTPConfig struct {
	CORSOrigins        []string `envconfig:"HTTP_CORS_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMinute int      `envconfig:"HTTP_RATE_LIMIT_PER_MINUTE" default:"300"`
	UploadTempDir      string   `envconfig:"HTTP_UPLOAD_TEMP_DIR" default:""`
	MaxUploadBytes     int64    `envconfig:"HTTP_MAX_UPLOAD_BYTES" default:"2147483648"`
}

// AuthConfig is only read by the API. An empty secret is rejected at startup.
type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"JWT_TOKEN_TTL" default:"24h"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"5"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
	MetricsPort     int           `envconfig:"WORKER_METRICS_PORT" default:"9091"`
}

type DatabaseConfig struct {
	Host       string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port       int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User       string `envconfig:"POSTGRES_USER" default:"vidtube"`
	Password   string `envconfig:"POSTGRES_PASSWORD" default:"vidtube"`
	DBName     string `envconfig:"POSTGRES_DB" default:"vidtube"`
	SSLMode    string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	AutoSchema bool   `envconfig:"POSTGRES_AUTO_SCHEMA" default:"true"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint      string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey     string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey     string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket        string `envconfig:"MINIO_BUCKET" default:"vidtube"`
	UseSSL        bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL" default:"http://localhost:9000"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"vidtube"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"vidtube"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CacheConfig struct {
	VideoTTL time.Duration `envconfig:"CACHE_VIDEO_TTL" default:"5m"`
}

type LockConfig struct {
	Expiry     time.Duration `envconfig:"LOCK_EXPIRY" default:"5s"`
	Tries      int           `envconfig:"LOCK_TRIES" default:"20"`
	RetryDelay time.Duration `envconfig:"LOCK_RETRY_DELAY" default:"50ms"`
}

type MediaConfig struct {
	FFprobePath string `envconfig:"FFPROBE_PATH" default:"ffprobe"`
}

type BreakerConfig struct {
	MaxRequests      uint32        `envconfig:"BREAKER_MAX_REQUESTS" default:"1"`
	Interval         time.Duration `envconfig:"BREAKER_INTERVAL" default:"1m"`
	Timeout          time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
	FailureThreshold uint32        `envconfig:"BREAKER_FAILURE_THRESHOLD" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
