package redis

import (
	game_constants "Wordrush/constants/game"
	redis_models "Wordrush/models/redis"
	redis_utils "Wordrush/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 30 * 24 * time.Hour

// RecordGame prepends a finished game to the identity's history, keeping
// the last few games only
// Key format: "history:{historyKey}:games"
func (rc *RedisClient) RecordGame(ctx context.Context, historyKey string, record redis_models.GameRecord) error {
	key := redis_utils.FormatGameHistoryKey(historyKey)
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling game record: %w", err)
	}

	_, err = rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, game_constants.CROSS_GAME_HISTORY_GAMES-1)
		pipe.Expire(ctx, key, historyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error recording game history: %w", err)
	}
	return nil
}

// RecentGames returns the last games of one identity, newest first
func (rc *RedisClient) RecentGames(ctx context.Context, historyKey string) ([]redis_models.GameRecord, error) {
	key := redis_utils.FormatGameHistoryKey(historyKey)
	raw, err := rc.client.LRange(ctx, key, 0, game_constants.CROSS_GAME_HISTORY_GAMES-1).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting game history: %w", err)
	}

	records := make([]redis_models.GameRecord, 0, len(raw))
	for _, item := range raw {
		var record redis_models.GameRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// RecentGameCategories collects every base and mini category name seen by
// any of the identities in their recent games
func (rc *RedisClient) RecentGameCategories(ctx context.Context, historyKeys []string) ([]string, error) {
	seen := map[string]struct{}{}
	var names []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, hk := range historyKeys {
		records, err := rc.RecentGames(ctx, hk)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			add(r.BaseCategory)
			for _, m := range r.MiniCategories {
				add(m)
			}
		}
	}
	return names, nil
}

// RecordCategoryLetters prepends "category|letter" pairs to the identity's
// fine-grained history
// Key format: "history:{historyKey}:category_letters"
func (rc *RedisClient) RecordCategoryLetters(ctx context.Context, historyKey string, pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	key := redis_utils.FormatCategoryLetterHistoryKey(historyKey)
	values := make([]any, len(pairs))
	for i, p := range pairs {
		values[i] = p
	}

	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, values...)
		pipe.LTrim(ctx, key, 0, game_constants.CATEGORY_LETTER_HISTORY-1)
		pipe.Expire(ctx, key, historyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error recording category letters: %w", err)
	}
	return nil
}

// RecentCategoryLetters merges the pair history of several identities
func (rc *RedisClient) RecentCategoryLetters(ctx context.Context, historyKeys []string) ([]string, error) {
	var pairs []string
	for _, hk := range historyKeys {
		key := redis_utils.FormatCategoryLetterHistoryKey(hk)
		items, err := rc.client.LRange(ctx, key, 0, game_constants.CATEGORY_LETTER_HISTORY-1).Result()
		if err != nil {
			return nil, fmt.Errorf("error getting category letters: %w", err)
		}
		pairs = append(pairs, items...)
	}
	return pairs, nil
}
