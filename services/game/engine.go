package game

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/logger"
	"Wordrush/models"
	"Wordrush/services/analytics"
	"Wordrush/services/categories"
	"Wordrush/services/letters"
	"Wordrush/services/store"
	"Wordrush/services/validation"
	"Wordrush/utils"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config holds the timing and sizing rules of a room
type Config struct {
	RoundDuration       time.Duration
	WinOverlay          time.Duration
	ToughBonusExtension time.Duration
	BonusSafetyTimeout  time.Duration
	TutorialTimeout     time.Duration

	WaitingInactivity time.Duration
	ActiveInactivity  time.Duration
	StaleRoomAge      time.Duration
	SweepInterval     time.Duration

	MinPlayers       int
	MaxPlayers       int
	PreferredPlayers int
}

func DefaultConfig() Config {
	return Config{
		RoundDuration:       game_constants.ROUND_DURATION,
		WinOverlay:          game_constants.WIN_OVERLAY,
		ToughBonusExtension: game_constants.TOUGH_BONUS_EXTENSION,
		BonusSafetyTimeout:  game_constants.BONUS_SAFETY_TIMEOUT,
		TutorialTimeout:     game_constants.TUTORIAL_TIMEOUT,
		WaitingInactivity:   game_constants.WAITING_INACTIVITY,
		ActiveInactivity:    game_constants.ACTIVE_INACTIVITY,
		StaleRoomAge:        game_constants.STALE_ROOM_AGE,
		SweepInterval:       game_constants.SWEEP_INTERVAL,
		MinPlayers:          game_constants.DEFAULT_MIN_PLAYERS,
		MaxPlayers:          game_constants.DEFAULT_MAX_PLAYERS,
		PreferredPlayers:    game_constants.DEFAULT_PREFERRED_PLAYERS,
	}
}

// Identity is who is calling, as resolved by the session layer
type Identity struct {
	PlayerID    string
	UserID      *string
	DisplayName string
}

// Deps are the collaborators of the engine. Only Store is required
type Deps struct {
	Store    store.Store
	Oracle   validation.Oracle
	Selector *categories.Selector
	Letters  *letters.Generator
	Sink     analytics.Sink
	History  History
	Now      func() time.Time
}

// Engine is the single entry point for every room operation. Each
// mutating call runs inside one room-locked transaction
type Engine struct {
	store    store.Store
	oracle   validation.Oracle
	selector *categories.Selector
	letters  *letters.Generator
	sink     analytics.Sink
	history  History
	now      func() time.Time
	cfg      Config

	sweepMu   sync.Mutex
	lastSweep time.Time
}

func NewEngine(deps Deps, cfg Config) *Engine {
	e := &Engine{
		store:    deps.Store,
		oracle:   validation.FailClosed{Oracle: deps.Oracle},
		selector: deps.Selector,
		letters:  deps.Letters,
		sink:     deps.Sink,
		history:  deps.History,
		now:      deps.Now,
		cfg:      cfg,
	}
	if e.selector == nil {
		e.selector = categories.NewSelector(nil, nil, nil, nil)
	}
	if e.letters == nil {
		e.letters = letters.NewGenerator(nil)
	}
	if e.sink == nil {
		e.sink = analytics.NopSink{}
	}
	if e.history == nil {
		e.history = NopHistory{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// effects run after a transaction commits. They are best-effort
type effects []func(ctx context.Context)

func (fx *effects) add(f func(ctx context.Context)) {
	*fx = append(*fx, f)
}

func (fx effects) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	for _, f := range fx {
		f(ctx)
	}
}

// withRoom runs fn under the room lock and translates store errors
func (e *Engine) withRoom(ctx context.Context, roomID string, fn func(tx store.Tx) error) error {
	err := e.store.WithRoomLock(ctx, roomID, fn)
	if errors.Is(err, store.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	return err
}

func (e *Engine) snapshotTx(tx store.Tx, now time.Time) (*Snapshot, error) {
	room := tx.Room()
	bonusUsed := false
	if ToughWin(room) {
		count, err := tx.CountWords(*room.RoundWinnerID, room.RoundNumber)
		if err != nil {
			return nil, err
		}
		bonusUsed = count >= game_constants.MAX_SUBMISSIONS_PER_ROUND
	}
	return buildSnapshot(room, tx.Players(), now, e.cfg, bonusUsed), nil
}

// readSnapshot reads the committed state without locking
func (e *Engine) readSnapshot(ctx context.Context, roomID string) (*Snapshot, error) {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	players, err := e.store.ListPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(room, players, e.now(), e.cfg, false), nil
}

func validateIdentity(id Identity) (Identity, error) {
	id.DisplayName = strings.TrimSpace(id.DisplayName)
	if id.PlayerID == "" {
		return id, ErrInvalidInput.With("Missing player id")
	}
	if id.DisplayName == "" {
		return id, ErrInvalidInput.With("Display name is required")
	}
	if len([]rune(id.DisplayName)) > 24 {
		return id, ErrInvalidInput.With("Display name is too long")
	}
	return id, nil
}

func newPlayer(roomID string, id Identity, now time.Time) *models.Player {
	return &models.Player{
		RoomID:           roomID,
		PlayerID:         id.PlayerID,
		UserID:           id.UserID,
		DisplayName:      id.DisplayName,
		CollectedLetters: []string{},
		JoinedAt:         now,
		LastSeenAt:       now,
	}
}

// CreateRoomRequest configures a new room. Zero sizes take the defaults
type CreateRoomRequest struct {
	Identity
	RoomType         string
	MinPlayers       int
	MaxPlayers       int
	PreferredPlayers int
}

// CreateRoom opens a waiting room with the caller as host
func (e *Engine) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Snapshot, error) {
	id, err := validateIdentity(req.Identity)
	if err != nil {
		return nil, err
	}

	roomType := req.RoomType
	if roomType == "" {
		roomType = game_constants.ROOM_PRIVATE
	}
	if roomType != game_constants.ROOM_PRIVATE && roomType != game_constants.ROOM_PUBLIC {
		return nil, ErrInvalidInput.With("Room type must be private or public")
	}

	minPlayers := orDefault(req.MinPlayers, e.cfg.MinPlayers)
	maxPlayers := orDefault(req.MaxPlayers, e.cfg.MaxPlayers)
	if minPlayers < 2 || maxPlayers < minPlayers || maxPlayers > game_constants.ABSOLUTE_MAX_PLAYERS {
		return nil, ErrInvalidInput.With("Invalid player limits")
	}
	preferred := min(max(orDefault(req.PreferredPlayers, e.cfg.PreferredPlayers), minPlayers), maxPlayers)

	now := e.now()
	room := &models.Room{
		ID:                    uuid.NewString(),
		Status:                game_constants.STATUS_WAITING,
		HostID:                id.PlayerID,
		RoomType:              roomType,
		MinPlayers:            minPlayers,
		MaxPlayers:            maxPlayers,
		PreferredPlayers:      preferred,
		Letters:               []string{},
		ShuffleVotes:          []string{},
		UsedMiniCategoryIDs:   []string{},
		FailedMiniCategoryIDs: []string{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	host := newPlayer(room.ID, id, now)

	if err := e.store.CreateRoom(ctx, room, host); err != nil {
		return nil, err
	}
	logger.Infof("[ROOM-CREATE] room %s (%s) created by %s", room.ID, room.Code, id.PlayerID)
	return buildSnapshot(room, []*models.Player{host}, now, e.cfg, false), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// JoinRoom seats the caller in a waiting room found by its code. Joining
// a room the caller already sits in only refreshes the seat
func (e *Engine) JoinRoom(ctx context.Context, code string, id Identity) (*Snapshot, error) {
	id, err := validateIdentity(id)
	if err != nil {
		return nil, err
	}
	code = utils.NormalizeRoomCode(code)
	if code == "" {
		return nil, ErrInvalidInput.With("Room code is required")
	}

	room, err := e.store.FindRoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return e.joinByID(ctx, room.ID, id)
}

func (e *Engine) joinByID(ctx context.Context, roomID string, id Identity) (*Snapshot, error) {
	var snap *Snapshot
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		now := e.now()
		room := tx.Room()

		if p := tx.Player(id.PlayerID); p != nil {
			p.DisplayName = id.DisplayName
			p.LastSeenAt = now
			if id.UserID != nil {
				p.UserID = id.UserID
			}
			if err := tx.SavePlayer(p); err != nil {
				return err
			}
		} else {
			if room.Status != game_constants.STATUS_WAITING {
				return ErrWrongStatus.With("Match already started")
			}
			if len(tx.Players()) >= room.MaxPlayers {
				return ErrRoomFull
			}
			if err := tx.SavePlayer(newPlayer(room.ID, id, now)); err != nil {
				return err
			}
			room.UpdatedAt = now
			if err := tx.SaveRoom(); err != nil {
				return err
			}
			logger.Infof("[ROOM-JOIN] %s joined room %s", id.PlayerID, room.ID)
		}

		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	return snap, err
}

// Matchmake seats the caller in the fullest public waiting room with
// space, or opens a new public room
func (e *Engine) Matchmake(ctx context.Context, id Identity) (*Snapshot, error) {
	id, err := validateIdentity(id)
	if err != nil {
		return nil, err
	}

	open, err := e.store.ListOpenPublicRooms(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(open, func(a, b store.OpenRoom) int {
		if a.PlayerCount != b.PlayerCount {
			return b.PlayerCount - a.PlayerCount
		}
		return a.Room.CreatedAt.Compare(b.Room.CreatedAt)
	})

	for _, candidate := range open {
		snap, err := e.joinByID(ctx, candidate.Room.ID, id)
		if err == nil {
			return snap, nil
		}
		// lost a race for the seat, try the next room
		if errors.Is(err, ErrRoomFull) || errors.Is(err, ErrWrongStatus) || errors.Is(err, ErrRoomNotFound) {
			continue
		}
		return nil, err
	}

	return e.CreateRoom(ctx, CreateRoomRequest{Identity: id, RoomType: game_constants.ROOM_PUBLIC})
}

// LeaveRoom removes the caller. The returned snapshot is nil when the
// room was deleted because it became empty
func (e *Engine) LeaveRoom(ctx context.Context, roomID, playerID string) (*Snapshot, error) {
	var snap *Snapshot
	var fx effects
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		if tx.Player(playerID) == nil {
			return ErrPlayerNotFound
		}
		now := e.now()
		deleted, err := e.removePlayers(tx, []string{playerID}, now, &fx)
		if err != nil || deleted {
			return err
		}
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	if err == nil {
		logger.Infof("[ROOM-LEAVE] %s left room %s", playerID, roomID)
		fx.run(ctx)
	}
	return snap, err
}

// SetReady toggles the caller's ready flag while the room waits
func (e *Engine) SetReady(ctx context.Context, roomID, playerID string, ready bool) (*Snapshot, error) {
	var snap *Snapshot
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		p := tx.Player(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if tx.Room().Status != game_constants.STATUS_WAITING {
			return ErrWrongStatus.With("Match already started")
		}
		now := e.now()
		p.IsReady = ready
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}
		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	return snap, err
}

// StartMatch locks the base category and sets up round one. Rooms with a
// player who has not done the tutorial wait in the tutorial status with
// no round timer
func (e *Engine) StartMatch(ctx context.Context, roomID, requesterID string) (*Snapshot, error) {
	var snap *Snapshot
	var fx effects
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		room := tx.Room()
		if room.HostID != requesterID {
			return ErrNotHost.With("Only the host can start the match")
		}
		if room.Status != game_constants.STATUS_WAITING {
			return ErrWrongStatus.With("Match already started")
		}
		players := tx.Players()
		if len(players) < room.MinPlayers {
			return ErrNotEnoughPlayers
		}

		now := e.now()
		recent := e.recentHistory(ctx, players)
		if room.BaseCategory == nil {
			room.BaseCategory = models.Ptr(e.selector.SelectBase(recent.Categories))
		}

		room.RoundNumber = 0
		room.FailedRounds = 0
		room.FailedMiniCategoryIDs = []string{}
		room.UsedMiniCategoryIDs = []string{}
		room.WinnerID = nil
		room.WinningGrandWord = nil

		tutorialPending := slices.ContainsFunc(players, func(p *models.Player) bool { return !p.TutorialComplete })
		if tutorialPending {
			room.Status = game_constants.STATUS_TUTORIAL
		} else {
			room.Status = game_constants.STATUS_PLAYING
		}

		if err := e.startNextRound(ctx, tx, now, e.letters.Generate(), recent, &fx); err != nil {
			return err
		}
		room.TutorialStartedAt = nil
		if tutorialPending {
			room.RoundStartTime = nil
			room.TutorialStartedAt = models.Ptr(now)
		}
		if err := tx.SaveRoom(); err != nil {
			return err
		}

		logger.Infof("[MATCH-START] room %s base=%q first=%q status=%s", room.ID, *room.BaseCategory, room.CurrentMiniCategory, room.Status)
		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	fx.run(ctx)
	return snap, nil
}

// CompleteTutorial marks the caller's tutorial as done. The last player
// to finish it starts the round timer
func (e *Engine) CompleteTutorial(ctx context.Context, roomID, playerID string) (*Snapshot, error) {
	var snap *Snapshot
	var fx effects
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		p := tx.Player(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		now := e.now()
		p.TutorialComplete = true
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}

		if tx.Room().Status == game_constants.STATUS_TUTORIAL && tutorialDone(tx.Players()) {
			if err := e.startAfterTutorial(tx, now, "all players done", &fx); err != nil {
				return err
			}
		}

		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	fx.run(ctx)
	return snap, nil
}

// PollState is the heartbeat of a client. It refreshes the caller's
// liveness, then applies lifecycle cleanup, the round timeout and the
// win-advance, in that order. When one of those fails the last committed
// state is returned instead
func (e *Engine) PollState(ctx context.Context, roomID, playerID string) (*Snapshot, error) {
	e.maybeSweep(ctx)

	var snap *Snapshot
	var fx effects
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		p := tx.Player(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		now := e.now()
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}

		if _, err := e.cleanupInactive(tx, now, &fx); err != nil {
			return err
		}
		if err := e.applyTutorialDeadline(tx, now, &fx); err != nil {
			return err
		}
		if err := e.applyTimeout(ctx, tx, now, &fx); err != nil {
			return err
		}
		if err := e.applyWinAdvance(ctx, tx, now, &fx); err != nil {
			return err
		}

		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	if err == nil {
		fx.run(ctx)
		return snap, nil
	}
	if _, ok := AsRejection(err); ok {
		return nil, err
	}

	logger.Errorf("[POLL-ERROR] room %s: %v, returning last committed state", roomID, err)
	return e.readSnapshot(ctx, roomID)
}

// PlayAgain returns a finished room to the waiting status with the same
// roster, clearing every trace of the previous match
func (e *Engine) PlayAgain(ctx context.Context, roomID, playerID string) (*Snapshot, error) {
	var snap *Snapshot
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		if tx.Player(playerID) == nil {
			return ErrPlayerNotFound
		}
		room := tx.Room()
		if room.Status != game_constants.STATUS_FINISHED {
			return ErrWrongStatus.With("Match is not finished")
		}

		now := e.now()
		room.Status = game_constants.STATUS_WAITING
		room.RoundNumber = 0
		room.FailedRounds = 0
		room.Letters = []string{}
		room.BaseCategory = nil
		room.CurrentMiniCategory = ""
		room.CurrentMiniID = ""
		room.RoundStartTime = nil
		room.TutorialStartedAt = nil
		room.ClearRoundWinner()
		room.ShuffleVotes = []string{}
		room.UsedMiniCategoryIDs = []string{}
		room.FailedMiniCategoryIDs = []string{}
		room.WinnerID = nil
		room.WinningGrandWord = nil
		room.UpdatedAt = now
		if err := tx.SaveRoom(); err != nil {
			return err
		}

		for _, p := range tx.Players() {
			p.CollectedLetters = []string{}
			p.IsReady = false
			if p.PlayerID == playerID {
				p.LastSeenAt = now
			}
			if err := tx.SavePlayer(p); err != nil {
				return err
			}
		}
		if err := tx.ClearHistory(); err != nil {
			return err
		}

		logger.Infof("[PLAY-AGAIN] room %s reset by %s", room.ID, playerID)
		var err error
		snap, err = e.snapshotTx(tx, now)
		return err
	})
	return snap, err
}

// RoundHistory lists the rounds of the current match for review
func (e *Engine) RoundHistory(ctx context.Context, roomID, playerID string) ([]models.RoundHistoryEntry, error) {
	players, err := e.store.ListPlayers(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !slices.ContainsFunc(players, func(p *models.Player) bool { return p.PlayerID == playerID }) {
		return nil, ErrPlayerNotFound
	}
	return e.store.ListRoundHistory(ctx, roomID)
}
