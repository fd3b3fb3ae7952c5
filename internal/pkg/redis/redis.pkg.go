package redis

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

const monitorInterval = 5 * time.Second

func Setup(ctx context.Context, config *Config) (*Client, error) {
	clientCtx, cancel := context.WithCancel(ctx)
	if config.OpTimeout <= 0 {
		config.OpTimeout = 3 * time.Second
	}

	r := &Client{
		cancel: cancel,
		ctx:    clientCtx,
		config: config,
		rdb: _redis.NewClient(&_redis.Options{
			Addr:            fmt.Sprintf("%s:%d", config.Host, config.Port),
			Username:        config.Username,
			Password:        config.Password,
			DB:              config.DB,
			PoolSize:        config.PoolSize,
			MaxRetries:      3,
			MinRetryBackoff: 100 * time.Millisecond,
			MaxRetryBackoff: time.Second,
			DialTimeout:     config.OpTimeout,
		}),
	}

	if err := r.Ping(clientCtx); err != nil {
		cancel()
		_ = r.rdb.Close()
		logger.Error.Println(err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	r.healthy.Store(true)

	go r.monitor()

	return r, nil
}

// monitor logs when redis goes away and when it comes back. go-redis
// redials on its own; this only tracks state for logs.
func (r *Client) monitor() {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			logger.Info.Println("Redis monitor shutting down...")
			return
		case <-ticker.C:
			err := r.Ping(r.ctx)
			switch {
			case err != nil && r.healthy.CompareAndSwap(true, false):
				logger.Warning.Printf("Redis connection lost: %v", err)
			case err == nil && r.healthy.CompareAndSwap(false, true):
				logger.Info.Println("Reconnected to Redis.")
			}
		}
	}
}

func (r *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = r.ctx
	}
	return context.WithTimeout(ctx, r.config.OpTimeout)
}

// Raw exposes the underlying client for libraries that take one directly.
func (r *Client) Raw() *_redis.Client {
	return r.rdb
}

// Close gracefully shuts down the Redis connection.
func (r *Client) Close() error {
	r.cancel()
	return r.rdb.Close()
}

// Set stores value as JSON with an expiration time.
func (r *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()
	if err := r.rdb.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves the value of a key. A missing key is "" with no error.
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, NilType) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Ping checks the connection.
func (r *Client) Ping(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}

// Del deletes a key.
func (r *Client) Del(ctx context.Context, key string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

var delIfValue = _redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// SetNX stores value only when key is absent. The value is stored raw.
func (r *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	ok, err := r.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx key %s: %w", key, err)
	}
	return ok, nil
}

// DelIfValue deletes key only while it still holds value.
func (r *Client) DelIfValue(ctx context.Context, key, value string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	if err := delIfValue.Run(ctx, r.rdb, []string{key}, value).Err(); err != nil && !errors.Is(err, NilType) {
		return fmt.Errorf("failed to release key %s: %w", key, err)
	}
	return nil
}
