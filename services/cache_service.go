package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService provides Redis caching with retry logic. With caching disabled every
// read misses and every write is dropped.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	cs := &CacheService{
		logger: logger,
		config: cfg,
	}
	if cfg.Cache.Enabled {
		cs.client = newRedisClient(cfg.Cache)
	}
	return cs
}

func newRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

func (cs *CacheService) Enabled() bool {
	return cs != nil && cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.Enabled() {
		return cs.client.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableError(err) {
			return err
		}

		maxBackoff := 2000 // ms
		base := 100        // ms

		backoff := min(base*(1<<attempt), maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key; a missing key yields "" and no error
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if !cs.Enabled() {
		return "", nil
	}

	var result string
	err := cs.withRetry(func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(func() error {
		return cs.client.Del(ctx, key).Err()
	}, 3)
}

// BlacklistToken stores a session jti until the session would have expired
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.SessionExpiry
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}

	return cs.Set(ctx, blacklistKey(jti), "true", ttl)
}

// IsTokenBlacklisted checks if a jti was revoked
func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	val, err := cs.Get(ctx, blacklistKey(jti))
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

func blacklistKey(jti uuid.UUID) string {
	return fmt.Sprintf("blacklist:%s", jti.String())
}

// IncrementRateLimit atomically increments a rate limit counter, starting its window on first use
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, ttl time.Duration) (int, error) {
	if !cs.Enabled() {
		return 0, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return cs.client.Expire(ctx, key, ttl).Err()
		}
		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if !cs.Enabled() {
		return map[string]any{"enabled": false}
	}

	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

func productKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}

// GetProduct returns the cached product for slug. Errors count as misses.
func (cs *CacheService) GetProduct(ctx context.Context, slug string) (*tables.Product, bool) {
	product, err := getJSON[tables.Product](ctx, cs, productKey(slug))
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("slug", slug))
		return nil, false
	}
	return product, product != nil
}

func (cs *CacheService) SetProduct(ctx context.Context, product *tables.Product) {
	if err := setJSON(ctx, cs, productKey(product.UrlFriendlyName), product, cs.config.Cache.ProductTTL); err != nil {
		cs.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("slug", product.UrlFriendlyName))
	}
}

func (cs *CacheService) InvalidateProduct(ctx context.Context, slug string) {
	if err := cs.Delete(ctx, productKey(slug)); err != nil {
		cs.logger.Warn("Failed to invalidate cached product", gecho.Field("error", err), gecho.Field("slug", slug))
	}
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil || val == "" {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return nil, err
	}
	return out, nil
}

func setJSON(ctx context.Context, cs *CacheService, key string, value any, ttl time.Duration) error {
	if !cs.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}
