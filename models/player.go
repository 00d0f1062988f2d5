package models

import (
	"slices"
	"time"
)

// Player is a seat in a room, keyed by (RoomID, PlayerID)
type Player struct {
	RoomID           string    `json:"room_id"`
	PlayerID         string    `json:"player_id"`
	UserID           *string   `json:"user_id,omitempty"` // set when the session is authenticated
	DisplayName      string    `json:"display_name"`
	CollectedLetters []string  `json:"collected_letters"`
	TutorialComplete bool      `json:"tutorial_complete"`
	IsReady          bool      `json:"is_ready"`
	JoinedAt         time.Time `json:"joined_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
}

func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.CollectedLetters = slices.Clone(p.CollectedLetters)
	c.UserID = clonePtr(p.UserID)
	return &c
}

// HistoryKey is the identity used for cross-game history: the user id when
// authenticated, the session player id otherwise
func (p *Player) HistoryKey() string {
	if p.UserID != nil && *p.UserID != "" {
		return "user:" + *p.UserID
	}
	return "player:" + p.PlayerID
}

// RoundHistoryEntry snapshots the conditions of one round
type RoundHistoryEntry struct {
	RoomID       string    `json:"room_id"`
	RoundNumber  int       `json:"round_number"`
	Letters      []string  `json:"letters"`
	MiniCategory string    `json:"mini_category"`
	CreatedAt    time.Time `json:"created_at"`
}

// UsedWord is one accepted submission
type UsedWord struct {
	RoomID      string    `json:"room_id"`
	PlayerID    string    `json:"player_id"`
	RoundNumber int       `json:"round_number"`
	Category    string    `json:"category"`
	Word        string    `json:"word"`
	CreatedAt   time.Time `json:"created_at"`
}
