package redis

import (
	"context"
	"sync/atomic"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is returned by go-redis when a key does not exist.
const NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	DB       int
	PoolSize int
	// OpTimeout bounds every single command; zero means 3s.
	OpTimeout time.Duration
}

type Client struct {
	rdb     *_redis.Client
	ctx     context.Context
	cancel  context.CancelFunc
	config  *Config
	healthy atomic.Bool
}

// IRedis is the slice of redis the session store needs.
type IRedis interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelIfValue(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}
