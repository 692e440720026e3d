package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type LoadFunc[T any] func(ctx context.Context) (T, error)

const (
	refreshLoadTimeout = 15 * time.Second
	cacheSetTimeout    = 5 * time.Second
)

// jitterTTL spreads expirations by up to ±15s so keys written by the same
// batch do not expire together.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	return ttl + time.Duration(rand.Intn(30)-15)*time.Second
}

// FindAndCache is a read-through cache with singleflight collapse. A hit
// also schedules a refresh-ahead reload so hot keys rarely expire cold; a
// miss loads once per key and stores the result off the request path.
func FindAndCache[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	load LoadFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var cached T
	err := c.Get(ctx, key, &cached)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		refreshAhead(c, sf, key, ttl, logger, load)
		return cached, nil

	case errors.Is(err, redis.Nil):
		logger.Debug("cache miss", zap.String("key", key))

	default:
		logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		storeAsync(c, key, value, ttl, logger)
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}
	if shared {
		logger.Debug("singleflight shared result", zap.String("key", key))
	}
	return value, nil
}

// refreshAhead reloads a key in the background after a short random delay.
// Concurrent hits collapse onto one refresh via the :refresh flight key.
func refreshAhead[T any](
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	load LoadFunc[T],
) {
	go func() {
		time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)

		_, _, _ = sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), refreshLoadTimeout)
			defer cancel()

			value, err := load(ctx)
			if err != nil {
				logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
				return nil, err
			}
			storeAsync(c, key, value, ttl, logger)
			return value, nil
		})
	}()
}

// storeAsync writes the value to the cache without blocking the caller.
func storeAsync[T any](c Cacher, key string, value T, ttl time.Duration, logger *zap.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
		defer cancel()

		if err := c.Set(ctx, key, value, jitterTTL(ttl)); err != nil {
			logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
			return
		}
		logger.Debug("cache updated", zap.String("key", key))
	}()
}
