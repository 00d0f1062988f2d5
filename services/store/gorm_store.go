package store

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/models"
	"Wordrush/models/postgres"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists rooms in postgres. WithRoomLock runs fn in a
// transaction holding SELECT ... FOR UPDATE on the room row.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room, host *models.Player) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := postgres.RoomFromModel(room)
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCodeTaken
			}
			return fmt.Errorf("error creating room: %w", err)
		}
		room.Code = row.Code

		if host == nil {
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(postgres.PlayerFromModel(host)).Error; err != nil {
			return fmt.Errorf("error adding host to room: %w", err)
		}
		return nil
	})
}

func (s *GormStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	var row postgres.Room
	if err := s.db.WithContext(ctx).Where("id = ?", roomID).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return row.ToModel(), nil
}

func (s *GormStore) FindRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	var row postgres.Room
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return row.ToModel(), nil
}

func (s *GormStore) ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error) {
	return loadPlayers(s.db.WithContext(ctx), roomID)
}

func (s *GormStore) ListUsedWords(ctx context.Context, roomID, category string) ([]models.UsedWord, error) {
	return loadUsedWords(s.db.WithContext(ctx), roomID, category)
}

func (s *GormStore) ListRoundHistory(ctx context.Context, roomID string) ([]models.RoundHistoryEntry, error) {
	var rows []postgres.RoundHistory
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("round_number asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error loading round history: %w", err)
	}
	return lo.Map(rows, func(r postgres.RoundHistory, _ int) models.RoundHistoryEntry {
		return r.ToModel()
	}), nil
}

func (s *GormStore) ListOpenPublicRooms(ctx context.Context) ([]OpenRoom, error) {
	type openRow struct {
		postgres.Room
		PlayerCount int
	}
	var rows []openRow
	err := s.db.WithContext(ctx).
		Model(&postgres.Room{}).
		Select("rooms.*, COUNT(room_players.player_id) AS player_count").
		Joins("LEFT JOIN room_players ON room_players.room_id = rooms.id").
		Where("rooms.status = ? AND rooms.room_type = ?", game_constants.STATUS_WAITING, game_constants.ROOM_PUBLIC).
		Group("rooms.id").
		Having("COUNT(room_players.player_id) < rooms.max_players").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error listing public rooms: %w", err)
	}
	return lo.Map(rows, func(r openRow, _ int) OpenRoom {
		return OpenRoom{Room: r.Room.ToModel(), PlayerCount: r.PlayerCount}
	}), nil
}

func (s *GormStore) WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row postgres.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", roomID).
			First(&row).Error; err != nil {
			return notFound(err)
		}

		players, err := loadPlayers(tx, roomID)
		if err != nil {
			return err
		}

		return fn(&gormTx{db: tx, room: row.ToModel(), players: players})
	})
}

func (s *GormStore) SweepStaleRooms(ctx context.Context, playerCutoff, emptyCutoff time.Time) (int, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&postgres.Room{}).
		Where(`(EXISTS (SELECT 1 FROM room_players p WHERE p.room_id = rooms.id)
			AND NOT EXISTS (SELECT 1 FROM room_players p WHERE p.room_id = rooms.id AND p.last_seen_at >= ?))
			OR (rooms.status = ? AND rooms.created_at < ?
			AND NOT EXISTS (SELECT 1 FROM room_players p WHERE p.room_id = rooms.id))`,
			playerCutoff, game_constants.STATUS_WAITING, emptyCutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("error finding stale rooms: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteRooms(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func deleteRooms(tx *gorm.DB, ids []string) error {
	if err := tx.Where("room_id IN ?", ids).Delete(&postgres.UsedWord{}).Error; err != nil {
		return fmt.Errorf("error deleting used words: %w", err)
	}
	if err := tx.Where("room_id IN ?", ids).Delete(&postgres.RoundHistory{}).Error; err != nil {
		return fmt.Errorf("error deleting round history: %w", err)
	}
	if err := tx.Where("room_id IN ?", ids).Delete(&postgres.RoomPlayer{}).Error; err != nil {
		return fmt.Errorf("error deleting players: %w", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&postgres.Room{}).Error; err != nil {
		return fmt.Errorf("error deleting rooms: %w", err)
	}
	return nil
}

func loadPlayers(db *gorm.DB, roomID string) ([]*models.Player, error) {
	var rows []postgres.RoomPlayer
	if err := db.Where("room_id = ?", roomID).
		Order("joined_at asc, player_id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}
	return lo.Map(rows, func(r postgres.RoomPlayer, _ int) *models.Player {
		return r.ToModel()
	}), nil
}

func loadUsedWords(db *gorm.DB, roomID, category string) ([]models.UsedWord, error) {
	query := db.Where("room_id = ?", roomID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var rows []postgres.UsedWord
	if err := query.Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error loading used words: %w", err)
	}
	return lo.Map(rows, func(r postgres.UsedWord, _ int) models.UsedWord {
		return r.ToModel()
	}), nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoomNotFound
	}
	return fmt.Errorf("error loading room: %w", err)
}

type gormTx struct {
	db      *gorm.DB
	room    *models.Room
	players []*models.Player
}

func (t *gormTx) Room() *models.Room { return t.room }

func (t *gormTx) SaveRoom() error {
	if err := t.db.Omit(clause.Associations).Save(postgres.RoomFromModel(t.room)).Error; err != nil {
		return fmt.Errorf("error saving room: %w", err)
	}
	return nil
}

func (t *gormTx) DeleteRoom() error {
	return deleteRooms(t.db, []string{t.room.ID})
}

func (t *gormTx) Players() []*models.Player { return slices.Clone(t.players) }

func (t *gormTx) Player(playerID string) *models.Player {
	p, _ := lo.Find(t.players, func(p *models.Player) bool { return p.PlayerID == playerID })
	return p
}

func (t *gormTx) SavePlayer(p *models.Player) error {
	if err := t.db.Omit(clause.Associations).Save(postgres.PlayerFromModel(p)).Error; err != nil {
		return fmt.Errorf("error saving player: %w", err)
	}
	if t.Player(p.PlayerID) == nil {
		t.players = append(t.players, p)
	}
	return nil
}

func (t *gormTx) DeletePlayer(playerID string) error {
	if err := t.db.Where("room_id = ? AND player_id = ?", t.room.ID, playerID).
		Delete(&postgres.RoomPlayer{}).Error; err != nil {
		return fmt.Errorf("error deleting player: %w", err)
	}
	t.players = lo.Reject(t.players, func(p *models.Player, _ int) bool { return p.PlayerID == playerID })
	return nil
}

func (t *gormTx) CountWords(playerID string, roundNumber int) (int, error) {
	var count int64
	err := t.db.Model(&postgres.UsedWord{}).
		Where("room_id = ? AND player_id = ? AND round_number = ?", t.room.ID, playerID, roundNumber).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting words: %w", err)
	}
	return int(count), nil
}

func (t *gormTx) WordUsed(category, word string) (bool, error) {
	var count int64
	err := t.db.Model(&postgres.UsedWord{}).
		Where("room_id = ? AND category = ? AND LOWER(word) = ?", t.room.ID, category, strings.ToLower(word)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error checking used word: %w", err)
	}
	return count > 0, nil
}

func (t *gormTx) UsedWords(category string) ([]models.UsedWord, error) {
	return loadUsedWords(t.db, t.room.ID, category)
}

func (t *gormTx) AddUsedWord(w models.UsedWord) error {
	if err := t.db.Omit(clause.Associations).Create(postgres.UsedWordFromModel(&w)).Error; err != nil {
		return fmt.Errorf("error recording used word: %w", err)
	}
	return nil
}

func (t *gormTx) UpsertRoundHistory(entry models.RoundHistoryEntry) error {
	err := t.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "round_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"letters", "mini_category", "created_at"}),
		}).
		Create(postgres.RoundHistoryFromModel(&entry)).Error
	if err != nil {
		return fmt.Errorf("error saving round history: %w", err)
	}
	return nil
}

func (t *gormTx) ClearHistory() error {
	if err := t.db.Where("room_id = ?", t.room.ID).Delete(&postgres.UsedWord{}).Error; err != nil {
		return fmt.Errorf("error clearing used words: %w", err)
	}
	if err := t.db.Where("room_id = ?", t.room.ID).Delete(&postgres.RoundHistory{}).Error; err != nil {
		return fmt.Errorf("error clearing round history: %w", err)
	}
	return nil
}
