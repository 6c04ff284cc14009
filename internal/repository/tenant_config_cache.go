package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// cachedTenantConfigRepository decorates TenantConfigRepository with a redis
// cache. Cache failures degrade to the underlying repository; they never fail
// the read.
type cachedTenantConfigRepository struct {
	inner  TenantConfigRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTenantConfigRepository wraps inner with redis caching. A nil
// client returns inner unchanged.
func NewCachedTenantConfigRepository(inner TenantConfigRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) TenantConfigRepository {
	if client == nil {
		return inner
	}
	return &cachedTenantConfigRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedTenantConfigRepository) Get(ctx context.Context, tenantID string) (*domain.TenantSlaConfig, error) {
	key := "sla_config:" + tenantID
	if payload, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cfg domain.TenantSlaConfig
		if err := json.Unmarshal(payload, &cfg); err == nil {
			return &cfg, nil
		}
	}

	cfg, err := r.inner.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(cfg); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Debug("sla config cache write failed", zap.Error(err))
		}
	}
	return cfg, nil
}
