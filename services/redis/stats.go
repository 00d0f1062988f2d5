package redis

import (
	redis_models "Wordrush/models/redis"
	redis_utils "Wordrush/services/redis/utils"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Fields of the category stats hash
const (
	StatRounds     = "rounds"
	StatAccepted   = "accepted"
	StatRejected   = "rejected"
	StatDeadRounds = "dead_rounds"
)

// IncrementCategoryStat bumps one counter of a category
// Key format: "category:{id}:stats"
func (rc *RedisClient) IncrementCategoryStat(ctx context.Context, categoryID, field string, n int64) error {
	key := redis_utils.FormatCategoryStatsKey(categoryID)
	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, field, n)
		pipe.SAdd(ctx, redis_utils.FormatTrackedCategoriesKey(), categoryID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error incrementing %s of category %s: %w", field, categoryID, err)
	}
	return nil
}

// CategoryStats loads the counters of every tracked category
func (rc *RedisClient) CategoryStats(ctx context.Context) (map[string]redis_models.CategoryStats, error) {
	ids, err := rc.client.SMembers(ctx, redis_utils.FormatTrackedCategoriesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("error listing tracked categories: %w", err)
	}
	if len(ids) == 0 {
		return map[string]redis_models.CategoryStats{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = rc.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, redis_utils.FormatCategoryStatsKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading category stats: %w", err)
	}

	stats := make(map[string]redis_models.CategoryStats, len(ids))
	for i, id := range ids {
		var s redis_models.CategoryStats
		if err := cmds[i].Scan(&s); err != nil {
			return nil, fmt.Errorf("error decoding stats of category %s: %w", id, err)
		}
		stats[id] = s
	}
	return stats, nil
}
