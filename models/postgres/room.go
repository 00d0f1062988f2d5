package postgres

import (
	"Wordrush/models"
	"Wordrush/utils"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Room' is the persisted row of a Wordrush room. It is the row every
 * state-mutating operation locks (SELECT ... FOR UPDATE) before touching
 * round state. It is referenced by RoomPlayer, RoundHistory and UsedWord
 */
type Room struct {
	ID               string `gorm:"primaryKey;size:50;not null"`
	Code             string `gorm:"size:8;not null;uniqueIndex:idx_rooms_code"`
	Status           string `gorm:"size:16;not null;default:'waiting';index:idx_rooms_status_type"`
	HostID           string `gorm:"size:50;not null"`
	RoomType         string `gorm:"size:16;not null;default:'private';index:idx_rooms_status_type"`
	MinPlayers       int    `gorm:"not null;default:2"`
	MaxPlayers       int    `gorm:"not null;default:8"`
	PreferredPlayers int    `gorm:"not null;default:4"`

	RoundNumber         int            `gorm:"not null;default:0"`
	FailedRounds        int            `gorm:"not null;default:0"`
	Letters             datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	BaseCategory        *string        `gorm:"size:100"`
	CurrentMiniCategory string         `gorm:"size:100"`
	CurrentMiniID       string         `gorm:"size:50"`
	RoundStartTime      *time.Time
	RoundWinnerID       *string `gorm:"size:50"`
	RoundWinningWord    *string `gorm:"size:64"`
	RoundWonAt          *time.Time
	TutorialStartedAt   *time.Time

	ShuffleVotes          datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	UsedMiniCategoryIDs   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	FailedMiniCategoryIDs datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	WinnerID         *string `gorm:"size:50"`
	WinningGrandWord *string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`

	// Relationships
	Players []*RoomPlayer `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Ensure the room code is unique. Codes are short, collisions are retried
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Code != "" {
		return nil
	}
	for {
		newCode := utils.GenerateRoomCode()
		var count int64
		if err := tx.Model(&Room{}).Where("code = ?", newCode).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			r.Code = newCode
			return nil
		}
	}
}

// RoomFromModel converts the domain room into its row
func RoomFromModel(m *models.Room) *Room {
	return &Room{
		ID:                    m.ID,
		Code:                  m.Code,
		Status:                m.Status,
		HostID:                m.HostID,
		RoomType:              m.RoomType,
		MinPlayers:            m.MinPlayers,
		MaxPlayers:            m.MaxPlayers,
		PreferredPlayers:      m.PreferredPlayers,
		RoundNumber:           m.RoundNumber,
		FailedRounds:          m.FailedRounds,
		Letters:               encodeStrings(m.Letters),
		BaseCategory:          m.BaseCategory,
		CurrentMiniCategory:   m.CurrentMiniCategory,
		CurrentMiniID:         m.CurrentMiniID,
		RoundStartTime:        m.RoundStartTime,
		RoundWinnerID:         m.RoundWinnerID,
		RoundWinningWord:      m.RoundWinningWord,
		RoundWonAt:            m.RoundWonAt,
		TutorialStartedAt:     m.TutorialStartedAt,
		ShuffleVotes:          encodeStrings(m.ShuffleVotes),
		UsedMiniCategoryIDs:   encodeStrings(m.UsedMiniCategoryIDs),
		FailedMiniCategoryIDs: encodeStrings(m.FailedMiniCategoryIDs),
		WinnerID:              m.WinnerID,
		WinningGrandWord:      m.WinningGrandWord,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// ToModel converts the row into the domain room
func (r *Room) ToModel() *models.Room {
	return &models.Room{
		ID:                    r.ID,
		Code:                  r.Code,
		Status:                r.Status,
		HostID:                r.HostID,
		RoomType:              r.RoomType,
		MinPlayers:            r.MinPlayers,
		MaxPlayers:            r.MaxPlayers,
		PreferredPlayers:      r.PreferredPlayers,
		RoundNumber:           r.RoundNumber,
		FailedRounds:          r.FailedRounds,
		Letters:               decodeStrings(r.Letters),
		BaseCategory:          r.BaseCategory,
		CurrentMiniCategory:   r.CurrentMiniCategory,
		CurrentMiniID:         r.CurrentMiniID,
		RoundStartTime:        r.RoundStartTime,
		RoundWinnerID:         r.RoundWinnerID,
		RoundWinningWord:      r.RoundWinningWord,
		RoundWonAt:            r.RoundWonAt,
		TutorialStartedAt:     r.TutorialStartedAt,
		ShuffleVotes:          decodeStrings(r.ShuffleVotes),
		UsedMiniCategoryIDs:   decodeStrings(r.UsedMiniCategoryIDs),
		FailedMiniCategoryIDs: decodeStrings(r.FailedMiniCategoryIDs),
		WinnerID:              r.WinnerID,
		WinningGrandWord:      r.WinningGrandWord,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
