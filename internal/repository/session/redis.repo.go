package session

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/redis"
	"encoding/json"
	"fmt"
	"time"
)

const keyPrefix = "delegasi-pay:session:"

type RedisRepository struct {
	rds redis.IRedis
	ttl time.Duration
}

func NewRedisRepo(rds redis.IRedis, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rds: rds, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (r *RedisRepository) Load(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.rds.Get(ctx, key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	if raw == "" {
		return models.NewSession(id), nil
	}

	session, err := helper.JSONToStruct[models.Session](json.RawMessage(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

func (r *RedisRepository) Save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	if err := r.rds.Set(ctx, key(session.ID), session, r.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.rds.Del(ctx, key(id))
}
