package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// cachedHolidayRepository decorates HolidayRepository with a redis cache for
// the per-tenant holiday list. Writes invalidate the cache so business-day
// deadlines pick up calendar edits immediately.
type cachedHolidayRepository struct {
	inner  HolidayRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedHolidayRepository wraps inner with redis caching. A nil client
// returns inner unchanged.
func NewCachedHolidayRepository(inner HolidayRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) HolidayRepository {
	if client == nil {
		return inner
	}
	return &cachedHolidayRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func holidayCacheKey(tenantID string) string {
	return "holidays:" + tenantID
}

func (r *cachedHolidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	if err := r.inner.Create(ctx, holiday); err != nil {
		return err
	}
	r.invalidate(ctx, holiday.TenantID)
	return nil
}

func (r *cachedHolidayRepository) Delete(ctx context.Context, tenantID string, day time.Time) error {
	if err := r.inner.Delete(ctx, tenantID, day); err != nil {
		return err
	}
	r.invalidate(ctx, tenantID)
	return nil
}

func (r *cachedHolidayRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Holiday, error) {
	key := holidayCacheKey(tenantID)
	if payload, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var holidays []domain.Holiday
		if err := json.Unmarshal(payload, &holidays); err == nil {
			return holidays, nil
		}
	}

	holidays, err := r.inner.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(holidays); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Debug("holiday cache write failed", zap.Error(err))
		}
	}
	return holidays, nil
}

func (r *cachedHolidayRepository) invalidate(ctx context.Context, tenantID string) {
	if err := r.client.Del(ctx, holidayCacheKey(tenantID)).Err(); err != nil {
		r.logger.Debug("holiday cache invalidate failed", zap.Error(err))
	}
}
