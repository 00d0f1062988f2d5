package game

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/logger"
	"Wordrush/models"
	"Wordrush/services/store"
	"context"
	"slices"
	"time"

	"github.com/samber/lo"
)

// cleanupInactive drops players the room has not heard from for too long.
// It reports whether the room was deleted
func (e *Engine) cleanupInactive(tx store.Tx, now time.Time, fx *effects) (bool, error) {
	room := tx.Room()
	var limit time.Duration
	switch room.Status {
	case game_constants.STATUS_WAITING:
		limit = e.cfg.WaitingInactivity
	case game_constants.STATUS_TUTORIAL, game_constants.STATUS_PLAYING:
		limit = e.cfg.ActiveInactivity
	default:
		return false, nil
	}

	gone := lo.FilterMap(tx.Players(), func(p *models.Player, _ int) (string, bool) {
		return p.PlayerID, now.Sub(p.LastSeenAt) >= limit
	})
	if len(gone) == 0 {
		return false, nil
	}
	logger.Infof("[INACTIVE] room %s (%s) removing %v", room.ID, room.Status, gone)
	return e.removePlayers(tx, gone, now, fx)
}

// removePlayers takes players out of the room and repairs what they leave
// behind: pending shuffle votes, the host seat, and the room itself once
// nobody is left. Waiting rooms are deleted when empty, started ones finish.
// A tutorial room whose last unfinished player left starts round one
func (e *Engine) removePlayers(tx store.Tx, playerIDs []string, now time.Time, fx *effects) (bool, error) {
	room := tx.Room()
	for _, id := range playerIDs {
		if err := tx.DeletePlayer(id); err != nil {
			return false, err
		}
	}
	room.ShuffleVotes = lo.Without(room.ShuffleVotes, playerIDs...)

	remaining := tx.Players()
	if len(remaining) == 0 {
		if room.Status == game_constants.STATUS_WAITING {
			logger.Infof("[ROOM-DELETE] room %s is empty", room.ID)
			return true, tx.DeleteRoom()
		}
		room.Status = game_constants.STATUS_FINISHED
		logger.Infof("[ROOM-ABANDONED] room %s finished with no players", room.ID)
	} else if slices.Contains(playerIDs, room.HostID) {
		// players are sorted by join time
		room.HostID = remaining[0].PlayerID
		logger.Infof("[HOST-TRANSFER] room %s host is now %s", room.ID, room.HostID)
	}

	room.UpdatedAt = now
	if room.Status == game_constants.STATUS_TUTORIAL && tutorialDone(remaining) {
		return false, e.startAfterTutorial(tx, now, "unfinished players left", fx)
	}
	return false, tx.SaveRoom()
}

func tutorialDone(players []*models.Player) bool {
	return len(players) > 0 && lo.EveryBy(players, func(p *models.Player) bool { return p.TutorialComplete })
}

// applyTutorialDeadline starts round one for a room stuck in the tutorial
func (e *Engine) applyTutorialDeadline(tx store.Tx, now time.Time, fx *effects) error {
	room := tx.Room()
	if room.Status != game_constants.STATUS_TUTORIAL || room.TutorialStartedAt == nil ||
		now.Sub(*room.TutorialStartedAt) < e.cfg.TutorialTimeout {
		return nil
	}
	return e.startAfterTutorial(tx, now, "tutorial timed out", fx)
}

// startAfterTutorial moves a tutorial room into its first round and starts
// the round timer
func (e *Engine) startAfterTutorial(tx store.Tx, now time.Time, reason string, fx *effects) error {
	room := tx.Room()
	room.Status = game_constants.STATUS_PLAYING
	room.RoundStartTime = models.Ptr(now)
	room.TutorialStartedAt = nil
	room.UpdatedAt = now
	if err := tx.SaveRoom(); err != nil {
		return err
	}
	e.roundStartedEffects(room, tx.Players(), fx)
	logger.Infof("[TUTORIAL-DONE] room %s starts round %d: %s", room.ID, room.RoundNumber, reason)
	return nil
}

// ShuffleResult reports a shuffle vote
type ShuffleResult struct {
	Votes    int       `json:"votes"`
	Needed   int       `json:"needed"`
	Shuffled bool      `json:"shuffled"`
	Snapshot *Snapshot `json:"snapshot"`
}

// VoteShuffle records the caller's vote to skip the round. Once a majority
// of the seated players voted the round is replaced with fresh letters and
// a new category
func (e *Engine) VoteShuffle(ctx context.Context, roomID, playerID string) (*ShuffleResult, error) {
	var res ShuffleResult
	var fx effects
	err := e.withRoom(ctx, roomID, func(tx store.Tx) error {
		p := tx.Player(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		room := tx.Room()
		if room.Status != game_constants.STATUS_PLAYING {
			return ErrWrongStatus.With("No round in progress")
		}
		if room.HasWinner() {
			return ErrWrongStatus.With("Round already won")
		}

		now := e.now()
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}
		if !slices.Contains(room.ShuffleVotes, playerID) {
			room.ShuffleVotes = append(room.ShuffleVotes, playerID)
		}
		res.Votes = len(room.ShuffleVotes)
		res.Needed = ShuffleMajority(len(tx.Players()))

		if res.Votes >= res.Needed {
			if err := e.advanceRound(ctx, tx, now, e.letters.Generate(), "shuffle", &fx); err != nil {
				return err
			}
			res.Shuffled = true
		} else {
			room.UpdatedAt = now
			if err := tx.SaveRoom(); err != nil {
				return err
			}
		}

		var err error
		res.Snapshot, err = e.snapshotTx(tx, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	fx.run(ctx)
	return &res, nil
}

// maybeSweep deletes abandoned rooms, at most once per sweep interval
func (e *Engine) maybeSweep(ctx context.Context) {
	now := e.now()
	e.sweepMu.Lock()
	if !e.lastSweep.IsZero() && now.Sub(e.lastSweep) < e.cfg.SweepInterval {
		e.sweepMu.Unlock()
		return
	}
	e.lastSweep = now
	e.sweepMu.Unlock()

	cutoff := now.Add(-e.cfg.StaleRoomAge)
	n, err := e.store.SweepStaleRooms(ctx, cutoff, cutoff)
	if err != nil {
		logger.Warnf("[SWEEP] %v", err)
		return
	}
	if n > 0 {
		logger.Infof("[SWEEP] deleted %d stale rooms", n)
	}
}
