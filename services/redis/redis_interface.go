package redis

import (
	"Wordrush/logger"
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client instance. Addr is either a
// redis:// URL or a plain host:port
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if strings.Contains(Addr, "://") {
		logger.Infof("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{client: client}, nil
}

// Ping checks the connection
func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := rc.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to cleanup Redis keys %v: %w", keys, err)
	}
	return nil
}
