package postgres

import (
	"Wordrush/models"
	"time"

	"gorm.io/datatypes"
)

// RoundHistory is unique per (room, round number) and is upserted when a
// dead round re-rolls the category of the same round
type RoundHistory struct {
	ID           uint           `gorm:"primaryKey"`
	RoomID       string         `gorm:"size:50;not null;uniqueIndex:idx_round_histories_room_round"`
	RoundNumber  int            `gorm:"not null;uniqueIndex:idx_round_histories_room_round"`
	Letters      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	MiniCategory string         `gorm:"size:100;not null"`
	CreatedAt    time.Time

	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

func RoundHistoryFromModel(m *models.RoundHistoryEntry) *RoundHistory {
	return &RoundHistory{
		RoomID:       m.RoomID,
		RoundNumber:  m.RoundNumber,
		Letters:      encodeStrings(m.Letters),
		MiniCategory: m.MiniCategory,
		CreatedAt:    m.CreatedAt,
	}
}

func (h *RoundHistory) ToModel() models.RoundHistoryEntry {
	return models.RoundHistoryEntry{
		RoomID:       h.RoomID,
		RoundNumber:  h.RoundNumber,
		Letters:      decodeStrings(h.Letters),
		MiniCategory: h.MiniCategory,
		CreatedAt:    h.CreatedAt,
	}
}

// UsedWord is the append-only audit of accepted submissions
type UsedWord struct {
	ID          uint      `gorm:"primaryKey"`
	RoomID      string    `gorm:"size:50;not null;index:idx_used_words_room_category;index:idx_used_words_room_round_player"`
	PlayerID    string    `gorm:"size:50;not null;index:idx_used_words_room_round_player"`
	RoundNumber int       `gorm:"not null;index:idx_used_words_room_round_player"`
	Category    string    `gorm:"size:100;not null;index:idx_used_words_room_category"`
	Word        string    `gorm:"size:64;not null"`
	CreatedAt   time.Time `gorm:"not null"`

	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

func UsedWordFromModel(m *models.UsedWord) *UsedWord {
	return &UsedWord{
		RoomID:      m.RoomID,
		PlayerID:    m.PlayerID,
		RoundNumber: m.RoundNumber,
		Category:    m.Category,
		Word:        m.Word,
		CreatedAt:   m.CreatedAt,
	}
}

func (u *UsedWord) ToModel() models.UsedWord {
	return models.UsedWord{
		RoomID:      u.RoomID,
		PlayerID:    u.PlayerID,
		RoundNumber: u.RoundNumber,
		Category:    u.Category,
		Word:        u.Word,
		CreatedAt:   u.CreatedAt,
	}
}
