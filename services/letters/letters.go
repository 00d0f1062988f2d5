package letters

import (
	game_constants "Wordrush/constants/game"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

var (
	ToughLetters = []string{"J", "K", "Q", "V", "X", "Z"}
	Vowels       = []string{"A", "E", "I", "O", "U"}
)

// Non-tough letters weighted roughly by how often words start with them
var commonWeights = map[string]int{
	"A": 6, "B": 5, "C": 8, "D": 5, "E": 4, "F": 4, "G": 4, "H": 4, "I": 4,
	"L": 4, "M": 5, "N": 3, "O": 3, "P": 6, "R": 4, "S": 10, "T": 6, "U": 2,
	"W": 4, "Y": 1,
}

const maxAttempts = 100

func IsTough(letter string) bool {
	return slices.Contains(ToughLetters, strings.ToUpper(letter))
}

func IsVowel(letter string) bool {
	return slices.Contains(Vowels, strings.ToUpper(letter))
}

// Valid reports whether a round letter set holds: five letters, exactly one
// tough letter, at least one vowel, no letter more than twice
func Valid(set []string) bool {
	if len(set) != game_constants.LETTERS_PER_ROUND {
		return false
	}
	if lo.CountBy(set, IsTough) != 1 {
		return false
	}
	if !lo.SomeBy(set, IsVowel) {
		return false
	}
	for _, count := range lo.CountValues(set) {
		if count > 2 {
			return false
		}
	}
	return true
}

// Generator draws round letter sets. Safe for concurrent use
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	common []string
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	keys := lo.Keys(commonWeights)
	slices.Sort(keys)
	var common []string
	for _, k := range keys {
		for range commonWeights[k] {
			common = append(common, k)
		}
	}
	return &Generator{rng: rng, common: common}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// Generate returns a fresh valid set of round letters
func (g *Generator) Generate() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generate()
}

func (g *Generator) generate() []string {
	for range maxAttempts {
		set := make([]string, 0, game_constants.LETTERS_PER_ROUND)
		set = append(set, g.pick(ToughLetters))
		for len(set) < game_constants.LETTERS_PER_ROUND {
			set = append(set, g.pick(g.common))
		}
		g.rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
		if Valid(set) {
			return set
		}
	}

	return []string{g.pick(ToughLetters), "A", "S", "E", "T"}
}

// ReplaceUsed removes one instance of used from current and puts a new
// letter in its slot. A missing tough letter is restored first, then a
// missing vowel, otherwise a common letter is drawn
func (g *Generator) ReplaceUsed(current []string, used string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	used = strings.ToUpper(used)
	idx := slices.Index(current, used)
	if idx < 0 || len(current) != game_constants.LETTERS_PER_ROUND {
		return g.generate()
	}

	remaining := slices.Delete(slices.Clone(current), idx, idx+1)
	pool := g.common
	switch {
	case !lo.SomeBy(remaining, IsTough):
		pool = ToughLetters
	case !lo.SomeBy(remaining, IsVowel):
		pool = Vowels
	}

	for range maxAttempts {
		if next := withSlot(current, idx, g.pick(pool)); Valid(next) {
			return next
		}
	}

	// Deterministic fallback: first letter of the pool that fits
	for _, letter := range lo.Uniq(pool) {
		if next := withSlot(current, idx, letter); Valid(next) {
			return next
		}
	}

	return g.generate()
}

func withSlot(current []string, idx int, letter string) []string {
	next := slices.Clone(current)
	next[idx] = letter
	return next
}
