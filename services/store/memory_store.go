package store

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/models"
	"Wordrush/utils"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

type roomRecord struct {
	room      *models.Room
	players   map[string]*models.Player
	history   map[int]models.RoundHistoryEntry
	usedWords []models.UsedWord
}

func (r *roomRecord) clone() *roomRecord {
	c := &roomRecord{
		room:      r.room.Clone(),
		players:   make(map[string]*models.Player, len(r.players)),
		history:   maps.Clone(r.history),
		usedWords: slices.Clone(r.usedWords),
	}
	for id, p := range r.players {
		c.players[id] = p.Clone()
	}
	if c.history == nil {
		c.history = map[int]models.RoundHistoryEntry{}
	}
	return c
}

func (r *roomRecord) sortedPlayers() []*models.Player {
	players := lo.Values(r.players)
	slices.SortFunc(players, func(a, b *models.Player) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	return players
}

// MemoryStore keeps every room in process memory. A per-room mutex gives
// the same single-writer guarantee the row lock gives GormStore, and
// transactions work on a copy that is only published when fn succeeds.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*roomRecord
	locks map[string]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*roomRecord),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room, host *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if room.Code == "" {
		for {
			code := utils.GenerateRoomCode()
			if s.findByCodeLocked(code) == nil {
				room.Code = code
				break
			}
		}
	} else if s.findByCodeLocked(room.Code) != nil {
		return ErrCodeTaken
	}

	rec := &roomRecord{
		room:    room.Clone(),
		players: map[string]*models.Player{},
		history: map[int]models.RoundHistoryEntry{},
	}
	if host != nil {
		rec.players[host.PlayerID] = host.Clone()
	}
	s.rooms[room.ID] = rec
	s.locks[room.ID] = &sync.Mutex{}
	return nil
}

func (s *MemoryStore) findByCodeLocked(code string) *roomRecord {
	for _, rec := range s.rooms {
		if rec.room.Code == code {
			return rec
		}
	}
	return nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return rec.room.Clone(), nil
}

func (s *MemoryStore) FindRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.findByCodeLocked(code)
	if rec == nil {
		return nil, ErrRoomNotFound
	}
	return rec.room.Clone(), nil
}

func (s *MemoryStore) ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return lo.Map(rec.sortedPlayers(), func(p *models.Player, _ int) *models.Player {
		return p.Clone()
	}), nil
}

func (s *MemoryStore) ListUsedWords(ctx context.Context, roomID, category string) ([]models.UsedWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return filterWords(rec.usedWords, category), nil
}

func (s *MemoryStore) ListRoundHistory(ctx context.Context, roomID string) ([]models.RoundHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	entries := lo.Values(rec.history)
	slices.SortFunc(entries, func(a, b models.RoundHistoryEntry) int {
		return a.RoundNumber - b.RoundNumber
	})
	return entries, nil
}

func (s *MemoryStore) ListOpenPublicRooms(ctx context.Context) ([]OpenRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var open []OpenRoom
	for _, rec := range s.rooms {
		if rec.room.Status != game_constants.STATUS_WAITING || rec.room.RoomType != game_constants.ROOM_PUBLIC {
			continue
		}
		if len(rec.players) >= rec.room.MaxPlayers {
			continue
		}
		open = append(open, OpenRoom{Room: rec.room.Clone(), PlayerCount: len(rec.players)})
	}
	return open, nil
}

func (s *MemoryStore) WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error {
	s.mu.RLock()
	lock, ok := s.locks[roomID]
	s.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	rec, ok := s.rooms[roomID]
	var working *roomRecord
	if ok {
		working = rec.clone()
	}
	s.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}

	tx := &memoryTx{rec: working}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		// swept while we held the lock
		return ErrRoomNotFound
	}
	if tx.deleted {
		delete(s.rooms, roomID)
		delete(s.locks, roomID)
		return nil
	}
	s.rooms[roomID] = tx.rec
	return nil
}

func (s *MemoryStore) SweepStaleRooms(ctx context.Context, playerCutoff, emptyCutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, rec := range s.rooms {
		if !isStale(rec, playerCutoff, emptyCutoff) {
			continue
		}
		delete(s.rooms, id)
		delete(s.locks, id)
		deleted++
	}
	return deleted, nil
}

func isStale(rec *roomRecord, playerCutoff, emptyCutoff time.Time) bool {
	if len(rec.players) == 0 {
		return rec.room.Status == game_constants.STATUS_WAITING && rec.room.CreatedAt.Before(emptyCutoff)
	}
	return lo.EveryBy(lo.Values(rec.players), func(p *models.Player) bool {
		return p.LastSeenAt.Before(playerCutoff)
	})
}

func filterWords(words []models.UsedWord, category string) []models.UsedWord {
	return lo.Filter(words, func(w models.UsedWord, _ int) bool {
		return category == "" || w.Category == category
	})
}

type memoryTx struct {
	rec     *roomRecord
	deleted bool
}

func (t *memoryTx) Room() *models.Room { return t.rec.room }

func (t *memoryTx) SaveRoom() error { return nil }

func (t *memoryTx) DeleteRoom() error {
	t.deleted = true
	return nil
}

func (t *memoryTx) Players() []*models.Player { return t.rec.sortedPlayers() }

func (t *memoryTx) Player(playerID string) *models.Player { return t.rec.players[playerID] }

func (t *memoryTx) SavePlayer(p *models.Player) error {
	t.rec.players[p.PlayerID] = p
	return nil
}

func (t *memoryTx) DeletePlayer(playerID string) error {
	delete(t.rec.players, playerID)
	return nil
}

func (t *memoryTx) CountWords(playerID string, roundNumber int) (int, error) {
	return lo.CountBy(t.rec.usedWords, func(w models.UsedWord) bool {
		return w.PlayerID == playerID && w.RoundNumber == roundNumber
	}), nil
}

func (t *memoryTx) WordUsed(category, word string) (bool, error) {
	return lo.ContainsBy(t.rec.usedWords, func(w models.UsedWord) bool {
		return w.Category == category && strings.EqualFold(w.Word, word)
	}), nil
}

func (t *memoryTx) UsedWords(category string) ([]models.UsedWord, error) {
	return filterWords(t.rec.usedWords, category), nil
}

func (t *memoryTx) AddUsedWord(w models.UsedWord) error {
	t.rec.usedWords = append(t.rec.usedWords, w)
	return nil
}

func (t *memoryTx) UpsertRoundHistory(entry models.RoundHistoryEntry) error {
	entry.Letters = slices.Clone(entry.Letters)
	t.rec.history[entry.RoundNumber] = entry
	return nil
}

func (t *memoryTx) ClearHistory() error {
	t.rec.history = map[int]models.RoundHistoryEntry{}
	t.rec.usedWords = nil
	return nil
}
