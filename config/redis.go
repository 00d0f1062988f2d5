package config

import (
	"Wordrush/logger"
	"Wordrush/services/redis"
	"fmt"
	"os"
)

// Connect_redis connects to the Redis server named by REDIS_URL
func Connect_redis() (*redis.RedisClient, error) {
	redisUri := os.Getenv("REDIS_URL")
	if redisUri == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}
	redisClient, err := redis.InitRedis(redisUri, 0)
	if err != nil {
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	logger.Infof("Redis connection established")
	return redisClient, nil
}
