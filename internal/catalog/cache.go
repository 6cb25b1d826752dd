package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/feiroulabs/feirou-backend/pkg/logger"
	"github.com/feiroulabs/feirou-backend/pkg/redis"
)

type cachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	logg   *logger.Logger
}

// NewCachedProvider wraps a provider with a redis read-through cache. Cache
// failures degrade to the wrapped provider instead of failing the request.
func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration, logg *logger.Logger) Provider {
	return &cachedProvider{next: next, client: client, ttl: ttl, logg: logg}
}

func (p *cachedProvider) DeliveryConfig(ctx context.Context, sellerSlug string) (DeliveryConfig, error) {
	key := p.client.CatalogKey(sellerSlug)

	raw, err := p.client.Get(ctx, key)
	if err == nil {
		var cfg DeliveryConfig
		if decodeErr := json.Unmarshal([]byte(raw), &cfg); decodeErr == nil {
			return cfg, nil
		}
		p.logg.Warn(ctx, "discarding undecodable delivery config cache entry")
	} else if !errors.Is(err, redis.Nil) {
		p.logg.Warn(ctx, "delivery config cache read failed")
	}

	cfg, err := p.next.DeliveryConfig(ctx, sellerSlug)
	if err != nil {
		return DeliveryConfig{}, err
	}

	if payload, encodeErr := json.Marshal(cfg); encodeErr == nil {
		if setErr := p.client.Set(ctx, key, payload, p.ttl); setErr != nil {
			p.logg.Warn(ctx, "delivery config cache write failed")
		}
	}
	return cfg, nil
}
