package config

import (
	"context"
	"delegasi-pay/internal/common/enum"
	database "delegasi-pay/internal/pkg/db"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/rabbitmq"
	"delegasi-pay/internal/pkg/redis"
	"sync"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv     enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort    int          `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL string       `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	CorsOrigin string       `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Delegasi credentials are injected, never defaulted.
	DelegasiBaseURL        string `env:"DELEGASI_BASE_URL" envDefault:"https://sb.delegasi.co"`
	DelegasiAPIKey         string `env:"DELEGASI_API_KEY"`
	DelegasiAPISecret      string `env:"DELEGASI_API_SECRET"`
	DelegasiTimeoutSeconds int    `env:"DELEGASI_TIMEOUT_SECONDS" envDefault:"15"`
	DelegasiProxyURL       string `env:"DELEGASI_PROXY_URL" envDefault:""`

	SessionSecret     string         `env:"SESSION_SECRET"`
	SessionTTLMinutes int            `env:"SESSION_TTL_MINUTES" envDefault:"30"`
	SessionDriver     enum.StoreEnum `env:"SESSION_DRIVER" envDefault:"memory"`
	VirtualAccount    string         `env:"VIRTUAL_ACCOUNT_NUMBER" envDefault:"1234567890"`
	CompanyCode       string         `env:"MANDIRI_COMPANY_CODE" envDefault:""`
	WorkerPoolSize    int            `env:"WORKER_POOL_SIZE" envDefault:"10"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	RabbitEnabled bool   `env:"RABBIT_ENABLED" envDefault:"false"`
	RabbitHost    string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string `env:"RABBIT_PASS" envDefault:"guest"`
	RabbitVHost   string `env:"RABBIT_VHOST" envDefault:""`
	RabbitQueue   string `env:"RABBIT_QUEUE" envDefault:"payment.confirmed"`

	DBEnabled bool                `env:"DB_ENABLED" envDefault:"false"`
	DBDriver  database.DriverEnum `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost    string              `env:"DB_HOST" envDefault:"localhost"`
	DBPort    int                 `env:"DB_PORT" envDefault:"5432"`
	DBUser    string              `env:"DB_USER" envDefault:"postgres"`
	DBPass    string              `env:"DB_PASS" envDefault:""`
	DBName    string              `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode string              `env:"DB_SSL_MODE" envDefault:"disable"`
	DBCache   bool                `env:"DB_CACHE" envDefault:"false"`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx    *context.Context
	Cancel context.CancelFunc
	Wg     *sync.WaitGroup
	Env    *Config
	Db     *database.Database
	Rds    redis.IRedis
	Rb     *rabbitmq.ConnectionManager
	Dg     *delegasi.Client
}
