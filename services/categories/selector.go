package categories

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/services/letters"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

var ErrNoCategory = errors.New("no category available")

// SelectionInput describes the round a mini category is picked for
type SelectionInput struct {
	Letters      []string
	UsedIDs      []string // picked earlier this match
	FailedIDs    []string // dead-rounded earlier this match
	BaseCategory string
	// dead rounds in a row before this pick
	ConsecutiveFailures int
	// category names the players saw in their last games
	RecentGameCategories []string
	// "category|letter" pairs the players played recently, see LetterPairKey
	RecentCategoryLetters []string
}

// Candidate is a scored category, exposed for logging and tests
type Candidate struct {
	Category Category
	Score    float64
}

type DifficultyLookup interface {
	Snapshot(ctx context.Context) map[string]float64
}

// Selector picks mini and base categories. Safe for concurrent use
type Selector struct {
	catalog    []Category
	bases      []string
	difficulty DifficultyLookup

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(catalog []Category, bases []string, difficulty DifficultyLookup, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(catalog) == 0 {
		catalog = DefaultCatalog
	}
	if len(bases) == 0 {
		bases = DefaultBaseCategories
	}
	return &Selector{
		catalog:    catalog,
		bases:      bases,
		difficulty: difficulty,
		rng:        rng,
	}
}

// LetterPairKey is the key of a (category, letter) pair in the recent history
func LetterPairKey(category, letter string) string {
	return fmt.Sprintf("%s|%s", strings.ToLower(strings.TrimSpace(category)), strings.ToUpper(letter))
}

// ByID finds a catalog entry
func (s *Selector) ByID(id string) (Category, bool) {
	return lo.Find(s.catalog, func(c Category) bool { return c.ID == id })
}

// SelectMini picks the mini category for the next round
func (s *Selector) SelectMini(ctx context.Context, in SelectionInput) (Category, error) {
	ranked := s.Rank(ctx, in)
	if len(ranked) == 0 {
		return Category{}, ErrNoCategory
	}

	top := topCount(len(ranked))

	s.mu.Lock()
	pick := ranked[s.rng.Intn(top)]
	s.mu.Unlock()
	return pick.Category, nil
}

// Rank filters the catalog for the round and returns the candidates
// sorted by descending score
func (s *Selector) Rank(ctx context.Context, in SelectionInput) []Candidate {
	pool := s.candidates(in)
	if len(pool) == 0 {
		return nil
	}

	var difficulties map[string]float64
	if s.difficulty != nil {
		difficulties = s.difficulty.Snapshot(ctx)
	}

	hasTough := lo.SomeBy(in.Letters, letters.IsTough)
	recentPairs := lo.Keyify(in.RecentCategoryLetters)

	ranked := lo.Map(pool, func(c Category, _ int) Candidate {
		difficulty, ok := difficulties[c.ID]
		if !ok {
			difficulty = game_constants.DEFAULT_DIFFICULTY
		}
		repeated := lo.CountBy(in.Letters, func(l string) bool {
			_, seen := recentPairs[LetterPairKey(c.Name, l)]
			return seen
		})
		return Candidate{
			Category: c,
			Score: Score(ScoreInput{
				Breadth:             c.Breadth,
				ToughFriendly:       c.ToughFriendly,
				HasToughLetter:      hasTough,
				Difficulty:          difficulty,
				FreshAcrossGames:    !containsName(in.RecentGameCategories, c.Name),
				RepeatedLetterPairs: repeated,
			}),
		}
	})

	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Category.ID, b.Category.ID)
	})
	return ranked
}

// candidates applies the pool filters. When the pool empties, the
// cross-game cooldown is dropped first, then reuse within the match is
// allowed. The base category is never offered
func (s *Selector) candidates(in SelectionInput) []Category {
	notBase := lo.Reject(s.catalog, func(c Category, _ int) bool {
		return in.BaseCategory != "" && sameName(c.Name, in.BaseCategory)
	})
	unused := lo.Reject(notBase, func(c Category, _ int) bool {
		return slices.Contains(in.UsedIDs, c.ID)
	})
	fresh := lo.Reject(unused, func(c Category, _ int) bool {
		return containsName(in.RecentGameCategories, c.Name)
	})

	pool := fresh
	if len(pool) == 0 {
		pool = unused
	}
	if len(pool) == 0 {
		pool = notBase
	}

	withoutFailed := lo.Reject(pool, func(c Category, _ int) bool {
		return slices.Contains(in.FailedIDs, c.ID)
	})
	if len(withoutFailed) >= game_constants.MIN_CANDIDATES_AFTER_FAIL {
		pool = withoutFailed
	}

	if in.ConsecutiveFailures >= game_constants.BROAD_ONLY_AFTER_FAILURES {
		broad := lo.Filter(pool, func(c Category, _ int) bool {
			return c.Breadth >= game_constants.BROAD_CATEGORY_BREADTH
		})
		if len(broad) >= game_constants.MIN_BROAD_CANDIDATES {
			pool = broad
		}
	}
	return pool
}

// SelectBase picks the locked grand category of a match, avoiding names
// any participant saw recently unless that leaves nothing
func (s *Selector) SelectBase(recentGameCategories []string) string {
	pool := lo.Reject(s.bases, func(name string, _ int) bool {
		return containsName(recentGameCategories, name)
	})
	if len(pool) == 0 {
		pool = s.bases
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

func topCount(n int) int {
	top := max(game_constants.TOP_CANDIDATES_MIN, int(math.Ceil(game_constants.TOP_CANDIDATES_FRACTION*float64(n))))
	return min(top, n)
}

func containsName(names []string, name string) bool {
	return lo.ContainsBy(names, func(n string) bool { return sameName(n, name) })
}
