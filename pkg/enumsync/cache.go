package enumsync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheConfig holds the read-through cache settings
type CacheConfig struct {
	// Prefix is prepended to every key
	Prefix string
	// TTL is how long a cached record lives
	TTL time.Duration
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Prefix: "adb:enum:",
		TTL:    10 * time.Minute,
	}
}

// CachedRepository wraps a Repository with a Redis read-through cache for
// lookups by enum id and code. Writes go to the wrapped repository first and
// then drop the affected keys. Cache failures fall back to the repository.
type CachedRepository struct {
	Repository
	client *redis.Client
	config CacheConfig
	logger *zap.Logger
}

// NewCachedRepository creates a cache in front of repo
func NewCachedRepository(repo Repository, client *redis.Client, config CacheConfig, logger *zap.Logger) *CachedRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TTL == 0 {
		config.TTL = DefaultCacheConfig().TTL
	}
	return &CachedRepository{
		Repository: repo,
		client:     client,
		config:     config,
		logger:     logger,
	}
}

func (c *CachedRepository) idKey(enumID string) string {
	return c.config.Prefix + "id:" + enumID
}

func (c *CachedRepository) codeKey(code string) string {
	return c.config.Prefix + "code:" + code
}

// FindByEnumID reads through the cache
func (c *CachedRepository) FindByEnumID(ctx context.Context, enumID string) (*Record, error) {
	return c.readThrough(ctx, c.idKey(enumID), func() (*Record, error) {
		return c.Repository.FindByEnumID(ctx, enumID)
	})
}

// FindByCode reads through the cache
func (c *CachedRepository) FindByCode(ctx context.Context, code string) (*Record, error) {
	return c.readThrough(ctx, c.codeKey(code), func() (*Record, error) {
		return c.Repository.FindByCode(ctx, code)
	})
}

func (c *CachedRepository) readThrough(ctx context.Context, key string, load func() (*Record, error)) (*Record, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rec Record
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("enum cache read failed", zap.String("key", key), zap.Error(err))
	}

	rec, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.client.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
			c.logger.Warn("enum cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rec, nil
}

// Save writes through and drops the cached entries of rec. When the save
// changes the code of a stored row, the old code key is dropped too.
func (c *CachedRepository) Save(ctx context.Context, rec *Record) (*Record, error) {
	var keys []string
	if code, ok := c.storedCode(ctx, rec.EnumID); ok {
		keys = append(keys, c.codeKey(code))
	}

	saved, err := c.Repository.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, append(keys, c.idKey(saved.EnumID), c.codeKey(saved.Code))...)
	return saved, nil
}

// Update writes through and drops the cached entries of the record. A patch
// never changes the code, so one code key covers it.
func (c *CachedRepository) Update(ctx context.Context, enumID string, patch Patch) error {
	keys := []string{c.idKey(enumID)}
	if code, ok := c.cachedCode(ctx, enumID); ok {
		keys = append(keys, c.codeKey(code))
	}

	if err := c.Repository.Update(ctx, enumID, patch); err != nil {
		return err
	}

	if len(keys) == 1 {
		if rec, err := c.Repository.FindByEnumID(ctx, enumID); err == nil {
			keys = append(keys, c.codeKey(rec.Code))
		}
	}
	c.invalidate(ctx, keys...)
	return nil
}

func (c *CachedRepository) cachedCode(ctx context.Context, enumID string) (string, bool) {
	data, err := c.client.Get(ctx, c.idKey(enumID)).Bytes()
	if err != nil {
		return "", false
	}
	var rec Record
	if json.Unmarshal(data, &rec) != nil {
		return "", false
	}
	return rec.Code, true
}

// storedCode returns the code enumID is stored under before a write, read
// from the cache or else from the wrapped repository.
func (c *CachedRepository) storedCode(ctx context.Context, enumID string) (string, bool) {
	if enumID == "" {
		return "", false
	}
	if code, ok := c.cachedCode(ctx, enumID); ok {
		return code, true
	}
	rec, err := c.Repository.FindByEnumID(ctx, enumID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("could not read stored enum before save", zap.String("enum_id", enumID), zap.Error(err))
		}
		return "", false
	}
	return rec.Code, true
}

func (c *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("enum cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Close closes the Redis connection
func (c *CachedRepository) Close() error {
	return c.client.Close()
}
