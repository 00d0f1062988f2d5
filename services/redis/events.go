package redis

import (
	redis_models "Wordrush/models/redis"
	redis_utils "Wordrush/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Events kept in the queue for the exporter to drain
const maxQueuedEvents = 10000

// PushEvent appends an analytics event to the export queue
// Key format: "analytics:events"
func (rc *RedisClient) PushEvent(ctx context.Context, event redis_models.AnalyticsEvent) error {
	key := redis_utils.FormatAnalyticsQueueKey()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}

	_, err = rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, maxQueuedEvents-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error pushing event: %w", err)
	}
	return nil
}

// QueuedEvents returns up to n queued events, oldest first
func (rc *RedisClient) QueuedEvents(ctx context.Context, n int64) ([]redis_models.AnalyticsEvent, error) {
	raw, err := rc.client.LRange(ctx, redis_utils.FormatAnalyticsQueueKey(), -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}

	events := make([]redis_models.AnalyticsEvent, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e redis_models.AnalyticsEvent
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
