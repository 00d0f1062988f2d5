package models

import (
	"slices"
	"time"
)

// Room is the authoritative state of one game room
type Room struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Status           string `json:"status"` // "waiting", "tutorial", "playing", "finished"
	HostID           string `json:"host_id"`
	RoomType         string `json:"room_type"` // "private", "public"
	MinPlayers       int    `json:"min_players"`
	MaxPlayers       int    `json:"max_players"`
	PreferredPlayers int    `json:"preferred_players"`

	RoundNumber         int        `json:"round_number"`
	FailedRounds        int        `json:"failed_rounds"`
	Letters             []string   `json:"letters"`
	BaseCategory        *string    `json:"base_category"`
	CurrentMiniCategory string     `json:"current_mini_category"`
	CurrentMiniID       string     `json:"current_mini_id"`
	RoundStartTime      *time.Time `json:"round_start_time"`
	RoundWinnerID       *string    `json:"round_winner_id"`
	RoundWinningWord    *string    `json:"round_winning_word"`
	RoundWonAt          *time.Time `json:"round_won_at"`
	// set while the room waits in the tutorial
	TutorialStartedAt *time.Time `json:"tutorial_started_at"`

	ShuffleVotes          []string `json:"shuffle_votes"`
	UsedMiniCategoryIDs   []string `json:"used_mini_category_ids"`
	FailedMiniCategoryIDs []string `json:"failed_mini_category_ids"`

	WinnerID         *string `json:"winner_id"`
	WinningGrandWord *string `json:"winning_grand_word"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy, so a transaction can mutate it freely
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Letters = slices.Clone(r.Letters)
	c.ShuffleVotes = slices.Clone(r.ShuffleVotes)
	c.UsedMiniCategoryIDs = slices.Clone(r.UsedMiniCategoryIDs)
	c.FailedMiniCategoryIDs = slices.Clone(r.FailedMiniCategoryIDs)
	c.BaseCategory = clonePtr(r.BaseCategory)
	c.RoundStartTime = clonePtr(r.RoundStartTime)
	c.RoundWinnerID = clonePtr(r.RoundWinnerID)
	c.RoundWinningWord = clonePtr(r.RoundWinningWord)
	c.RoundWonAt = clonePtr(r.RoundWonAt)
	c.TutorialStartedAt = clonePtr(r.TutorialStartedAt)
	c.WinnerID = clonePtr(r.WinnerID)
	c.WinningGrandWord = clonePtr(r.WinningGrandWord)
	return &c
}

func (r *Room) HasWinner() bool {
	return r.RoundWinnerID != nil
}

func (r *Room) IsWinner(playerID string) bool {
	return r.RoundWinnerID != nil && *r.RoundWinnerID == playerID
}

// ClearRoundWinner resets the per-round winner fields
func (r *Room) ClearRoundWinner() {
	r.RoundWinnerID = nil
	r.RoundWinningWord = nil
	r.RoundWonAt = nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
