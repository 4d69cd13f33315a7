package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "cfresh:listing"

type redisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisListingCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) ListingCache {
	return &redisListingCache{
		client: client,
		ttl:    ttl,
		log:    logger,
	}
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func generationKey(entity string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, entity)
}

func (c *redisListingCache) entryKey(ctx context.Context, entity, key string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey(entity)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%d:%s", keyPrefix, entity, gen, key), nil
}

func (c *redisListingCache) Get(ctx context.Context, entity, key string, dest any) (Slot, bool) {
	k, err := c.entryKey(ctx, entity, key)
	if err != nil {
		c.log.Warnf("Cache: Failed to read generation for %s: %v", entity, err)
		return Slot{}, false
	}
	slot := Slot{key: k}
	data, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Cache: Failed to read %s: %v", k, err)
		}
		return slot, false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warnf("Cache: Failed to decode %s: %v", k, err)
		return slot, false
	}
	c.log.Debugf("Cache: hit %s", k)
	return slot, true
}

// Set writes under the generation the slot was taken from.
func (c *redisListingCache) Set(ctx context.Context, slot Slot, value any) {
	if slot.key == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Cache: Failed to encode %s: %v", slot.key, err)
		return
	}
	if err := c.client.Set(ctx, slot.key, data, c.ttl).Err(); err != nil {
		c.log.Warnf("Cache: Failed to write %s: %v", slot.key, err)
	}
}

// Invalidate bumps the generation of each entity. Old entries are never
// read again and expire on their own.
func (c *redisListingCache) Invalidate(ctx context.Context, entities ...string) {
	for _, entity := range entities {
		if err := c.client.Incr(ctx, generationKey(entity)).Err(); err != nil {
			c.log.Warnf("Cache: Failed to invalidate %s: %v", entity, err)
			continue
		}
		c.log.Debugf("Cache: invalidated %s", entity)
	}
}
