package categories

import (
	game_constants "Wordrush/constants/game"
)

// ScoreInput is everything the scorer knows about one candidate
type ScoreInput struct {
	Breadth       int
	ToughFriendly bool
	// letters of the round contain a tough letter
	HasToughLetter bool
	// dynamic difficulty, 1 (easy) to 10 (hard)
	Difficulty float64
	// category absent from the players' recent games
	FreshAcrossGames bool
	// current letters whose (category, letter) pair was played recently
	RepeatedLetterPairs int
}

const (
	breadthWeight       = 0.25
	compatibilityWeight = 0.35
	easeWeight          = 0.40

	hardPenalty    = 2.0
	sweetSpotBonus = 1.0
	toughBonus     = 3.0
	freshBonus     = 2.0
)

// Compatibility is how well a category copes with the round letters
func Compatibility(in ScoreInput) float64 {
	switch {
	case !in.HasToughLetter || in.Breadth >= game_constants.TOUGH_COMPATIBLE_BREADTH:
		return 1.0
	case in.ToughFriendly:
		return 0.9
	default:
		return 0.3
	}
}

// Score rates a candidate; higher is a better fit for the next round.
// Breadth and ease are on a 1-10 scale, compatibility is scaled to match.
func Score(in ScoreInput) float64 {
	difficulty := clamp(in.Difficulty, 1, 10)
	ease := 11 - difficulty

	score := breadthWeight*float64(in.Breadth) +
		compatibilityWeight*Compatibility(in)*10 +
		easeWeight*ease

	if difficulty > 7 {
		score -= hardPenalty
	}
	if difficulty >= 4 && difficulty <= 6 {
		score += sweetSpotBonus
	}
	if in.HasToughLetter && in.ToughFriendly {
		score += toughBonus
	}
	if in.FreshAcrossGames {
		score += freshBonus
	}
	score -= game_constants.CATEGORY_LETTER_PENALTY * float64(in.RepeatedLetterPairs)
	return score
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
