package categories

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/logger"
	redis_models "Wordrush/models/redis"
	"context"
	"maps"
	"sync"
	"time"
)

// StatsSource loads the running statistics of every category, keyed by id
type StatsSource interface {
	CategoryStats(ctx context.Context) (map[string]redis_models.CategoryStats, error)
}

// Difficulty maps category statistics to 1 (easy) .. 10 (hard). Categories
// with too few rounds played get the default
func Difficulty(stats redis_models.CategoryStats) float64 {
	if stats.Rounds < game_constants.MIN_ROUNDS_FOR_DIFFICULTY {
		return game_constants.DEFAULT_DIFFICULTY
	}

	attempts := stats.Accepted + stats.Rejected
	acceptRate := 0.0
	if attempts > 0 {
		acceptRate = float64(stats.Accepted) / float64(attempts)
	}
	deadRate := clamp(float64(stats.DeadRounds)/float64(stats.Rounds), 0, 1)

	return clamp(1+9*(0.5*(1-acceptRate)+0.5*deadRate), 1, 10)
}

// DifficultyCache holds the computed difficulty of every category with
// known statistics. Values are pulled from the source on read once the
// last refresh is older than the TTL
type DifficultyCache struct {
	source StatsSource
	ttl    time.Duration
	now    func() time.Time

	mu          sync.Mutex
	values      map[string]float64
	lastRefresh time.Time
}

func NewDifficultyCache(source StatsSource, ttl time.Duration) *DifficultyCache {
	return &DifficultyCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		values: map[string]float64{},
	}
}

// Snapshot returns the current difficulties. On a failed refresh the
// previous values are kept
func (c *DifficultyCache) Snapshot(ctx context.Context) map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source != nil && (c.lastRefresh.IsZero() || c.now().Sub(c.lastRefresh) >= c.ttl) {
		c.refreshLocked(ctx)
	}
	return maps.Clone(c.values)
}

// Invalidate forces the next read to refresh
func (c *DifficultyCache) Invalidate() {
	c.mu.Lock()
	c.lastRefresh = time.Time{}
	c.mu.Unlock()
}

func (c *DifficultyCache) refreshLocked(ctx context.Context) {
	// stamp first so a failing source is not hammered on every read
	c.lastRefresh = c.now()

	stats, err := c.source.CategoryStats(ctx)
	if err != nil {
		logger.Warnf("[CATEGORY-CACHE] refresh failed, keeping %d cached values: %v", len(c.values), err)
		return
	}

	values := make(map[string]float64, len(stats))
	for id, s := range stats {
		values[id] = Difficulty(s)
	}
	c.values = values
}
