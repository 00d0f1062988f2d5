package postgres

import (
	"Wordrush/models"
	"time"

	"gorm.io/datatypes"
)

/*
 * 'RoomPlayer' represents the state of a player in a room. It contains
 * a reference to Room
 */
type RoomPlayer struct {
	// NOTE: composite primary key definition
	RoomID           string         `gorm:"primaryKey;size:50;not null"`
	PlayerID         string         `gorm:"primaryKey;size:50;not null;index"`
	UserID           *string        `gorm:"size:50"`
	DisplayName      string         `gorm:"size:50;not null"`
	CollectedLetters datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	TutorialComplete bool           `gorm:"default:false"`
	IsReady          bool           `gorm:"default:false"`
	JoinedAt         time.Time      `gorm:"not null"`
	LastSeenAt       time.Time      `gorm:"not null;index"`

	// Relationship with the room
	Room Room `gorm:"foreignKey:RoomID"`
}

func PlayerFromModel(m *models.Player) *RoomPlayer {
	return &RoomPlayer{
		RoomID:           m.RoomID,
		PlayerID:         m.PlayerID,
		UserID:           m.UserID,
		DisplayName:      m.DisplayName,
		CollectedLetters: encodeStrings(m.CollectedLetters),
		TutorialComplete: m.TutorialComplete,
		IsReady:          m.IsReady,
		JoinedAt:         m.JoinedAt,
		LastSeenAt:       m.LastSeenAt,
	}
}

func (p *RoomPlayer) ToModel() *models.Player {
	return &models.Player{
		RoomID:           p.RoomID,
		PlayerID:         p.PlayerID,
		UserID:           p.UserID,
		DisplayName:      p.DisplayName,
		CollectedLetters: decodeStrings(p.CollectedLetters),
		TutorialComplete: p.TutorialComplete,
		IsReady:          p.IsReady,
		JoinedAt:         p.JoinedAt,
		LastSeenAt:       p.LastSeenAt,
	}
}
