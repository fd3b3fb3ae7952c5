package database

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"delegasi-pay/internal/pkg/redis"
	"fmt"
	"net/url"
	"time"

	"github.com/go-gorm/caches/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_logger "gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Driver   DriverEnum

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	// Cache enables the gorm query cache; Rds backs it when set, memory otherwise.
	Cache     bool
	Rds       *redis.Client
	CacheTime time.Duration
}

type Database struct {
	*gorm.DB
	Config *Config
}

// dsn renders the connection string for cfg.Driver.
func (cfg *Config) dsn() (string, error) {
	switch cfg.Driver {
	case POSTGRES:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.Database,
			RawQuery: url.Values{"sslmode": {sslMode}, "TimeZone": {"UTC"}}.Encode(),
		}
		return u.String(), nil
	case MYSQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		), nil
	}
	return "", fmt.Errorf("unsupported database driver: %q (supported: postgres, mysql)", cfg.Driver)
}

func (cfg *Config) dialector() (gorm.Dialector, error) {
	dsn, err := cfg.dsn()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == MYSQL {
		return mysql.Open(dsn), nil
	}
	return postgres.Open(dsn), nil
}

func (cfg *Config) cacher() caches.Cacher {
	if cfg.Rds != nil && cfg.CacheTime > 0 {
		return &redisCacher{rdb: cfg.Rds.Raw(), cacheTime: cfg.CacheTime}
	}
	return &memoryCacher{}
}

func Setup(cfg *Config) (*Database, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: _logger.Default.LogMode(_logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Cache {
		plugin := &caches.Caches{Conf: &caches.Config{Cacher: cfg.cacher()}}
		if err := db.Use(plugin); err != nil {
			logger.Warning.Printf("Query cache disabled: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 5))
	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 10))
	sqlDB.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, 30*time.Minute))

	logger.Info.Printf("Connected to %s database %s", cfg.Driver.ToString(), cfg.Database)

	return &Database{db, cfg}, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Healthy pings the pool within ctx.
func (db *Database) Healthy(ctx context.Context) bool {
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}
