package utils

import (
	"context"
	"fmt"
	"time"

	"inkbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient serves the catalog listing cache.
	CacheClient *redis.Client
	// LockClient holds per-user conversation locks.
	LockClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis connects the cache and lock clients. It is a no-op when Redis is not configured.
func InitRedis() error {
	if !config.AppConfig.RedisEnabled() {
		return nil
	}
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if LockClient, err = newRedisClient(config.AppConfig.RedisLockDB); err != nil {
		return err
	}
	return nil
}

// RedisClients returns the connected clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{CacheClient, LockClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// CloseRedis closes every connected client.
func CloseRedis() {
	for _, c := range RedisClients() {
		_ = c.Close()
	}
}
