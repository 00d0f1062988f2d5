package game

import (
	"Wordrush/logger"
	"Wordrush/models"
	redis_models "Wordrush/models/redis"
	"context"
	"time"

	"github.com/samber/lo"
)

// History is the cross-game memory of players. *redis.RedisClient
// satisfies it
type History interface {
	RecentGameCategories(ctx context.Context, historyKeys []string) ([]string, error)
	RecentCategoryLetters(ctx context.Context, historyKeys []string) ([]string, error)
	RecordGame(ctx context.Context, historyKey string, record redis_models.GameRecord) error
	RecordCategoryLetters(ctx context.Context, historyKey string, pairs []string) error
}

// NopHistory remembers nothing
type NopHistory struct{}

func (NopHistory) RecentGameCategories(context.Context, []string) ([]string, error) {
	return nil, nil
}

func (NopHistory) RecentCategoryLetters(context.Context, []string) ([]string, error) {
	return nil, nil
}

func (NopHistory) RecordGame(context.Context, string, redis_models.GameRecord) error {
	return nil
}

func (NopHistory) RecordCategoryLetters(context.Context, string, []string) error {
	return nil
}

// playerHistory is what the selector needs to know about the players
type playerHistory struct {
	Categories      []string
	CategoryLetters []string
}

const historyLookupTimeout = 500 * time.Millisecond

// recentHistory reads the players' history. It is best-effort: on failure
// the selection simply runs without cross-game filtering
func (e *Engine) recentHistory(ctx context.Context, players []*models.Player) playerHistory {
	ctx, cancel := context.WithTimeout(ctx, historyLookupTimeout)
	defer cancel()

	keys := historyKeys(players)
	var out playerHistory
	var err error
	if out.Categories, err = e.history.RecentGameCategories(ctx, keys); err != nil {
		logger.Warnf("[HISTORY] reading recent categories: %v", err)
	}
	if out.CategoryLetters, err = e.history.RecentCategoryLetters(ctx, keys); err != nil {
		logger.Warnf("[HISTORY] reading category letters: %v", err)
	}
	return out
}

func historyKeys(players []*models.Player) []string {
	return lo.Uniq(lo.Map(players, func(p *models.Player, _ int) string {
		return p.HistoryKey()
	}))
}
