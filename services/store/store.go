package store

import (
	"Wordrush/models"
	"context"
	"errors"
	"time"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrCodeTaken    = errors.New("room code already in use")
)

// OpenRoom is a public waiting room as seen by matchmaking
type OpenRoom struct {
	Room        *models.Room
	PlayerCount int
}

// Store persists rooms, players, round history and used words.
//
// Every mutation of a room goes through WithRoomLock, which serializes all
// writers of that room. fn receives a Tx holding the locked room and its
// players; if fn returns an error nothing it wrote is kept.
type Store interface {
	CreateRoom(ctx context.Context, room *models.Room, host *models.Player) error
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	FindRoomByCode(ctx context.Context, code string) (*models.Room, error)
	ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error)
	ListUsedWords(ctx context.Context, roomID, category string) ([]models.UsedWord, error)
	ListRoundHistory(ctx context.Context, roomID string) ([]models.RoundHistoryEntry, error)
	ListOpenPublicRooms(ctx context.Context) ([]OpenRoom, error)

	WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error

	// SweepStaleRooms deletes rooms whose players were all last seen before
	// playerCutoff, and empty waiting rooms created before emptyCutoff
	SweepStaleRooms(ctx context.Context, playerCutoff, emptyCutoff time.Time) (int, error)
}

// Tx is the view of one locked room inside WithRoomLock
type Tx interface {
	// Room is the locked room. Mutate it in place and call SaveRoom
	Room() *models.Room
	SaveRoom() error
	DeleteRoom() error

	// Players are ordered by join time, oldest first
	Players() []*models.Player
	Player(playerID string) *models.Player
	SavePlayer(p *models.Player) error
	DeletePlayer(playerID string) error

	CountWords(playerID string, roundNumber int) (int, error)
	WordUsed(category, word string) (bool, error)
	UsedWords(category string) ([]models.UsedWord, error)
	AddUsedWord(w models.UsedWord) error

	UpsertRoundHistory(entry models.RoundHistoryEntry) error
	// ClearHistory drops round history and used words of the room
	ClearHistory() error
}
