package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vietjobs-search/internal/config"
	"vietjobs-search/internal/logging"
)

// RedisClient wraps the Redis client with facet result caching. Facet
// aggregations change slowly relative to how often the UI requests them,
// so responses are cached for a short TTL. Every method degrades to a
// cache miss when Redis is unreachable; the cache is never load-bearing.
type RedisClient struct {
	client *redis.Client
	config *config.Config
	logger logging.Logger
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB

	// Configure timeouts
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	return &RedisClient{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetFacets retrieves a cached facet payload into dest. The boolean
// reports a hit; Redis errors are logged and reported as a miss.
func (r *RedisClient) GetFacets(ctx context.Context, index, key string, dest any) bool {
	raw, err := r.client.Get(ctx, r.facetKey(index, key)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("Facet cache read failed", map[string]interface{}{
				"index": index,
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		r.logger.Warn("Facet cache entry corrupt, dropping", map[string]interface{}{
			"index": index,
			"key":   key,
		})
		r.client.Del(ctx, r.facetKey(index, key))
		return false
	}
	return true
}

// SetFacets stores a facet payload under the configured TTL.
func (r *RedisClient) SetFacets(ctx context.Context, index, key string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, r.facetKey(index, key), raw, r.config.Redis.FacetTTL).Err(); err != nil {
		r.logger.Warn("Facet cache write failed", map[string]interface{}{
			"index": index,
			"key":   key,
			"error": err.Error(),
		})
	}
}

// InvalidateFacets drops all cached facets for an index, e.g. after an
// upload changes its contents.
func (r *RedisClient) InvalidateFacets(ctx context.Context, index string) error {
	pattern := fmt.Sprintf("facets:%s:*", index)

	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan facet keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete facet keys: %w", err)
		}
	}
	return nil
}

// facetKey generates the Redis key for a cached facet payload
func (r *RedisClient) facetKey(index, key string) string {
	return fmt.Sprintf("facets:%s:%s", index, key)
}

// IsHealthy checks if Redis is connected and healthy
func (r *RedisClient) IsHealthy(ctx context.Context) error {
	return r.Ping(ctx)
}
