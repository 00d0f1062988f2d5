package game

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/logger"
	"Wordrush/models"
	redis_models "Wordrush/models/redis"
	"Wordrush/services/categories"
	"Wordrush/services/store"
	"context"
	"slices"
	"time"

	"github.com/samber/lo"
)

// The scheduler has no timers. Every poll recomputes from the stored
// timestamps whether the round timed out or a won round should advance,
// under the room lock so only one poller applies a transition.

func (e *Engine) selectMini(ctx context.Context, room *models.Room, letters []string, consecutiveFailures int, hist playerHistory) (categories.Category, error) {
	base := ""
	if room.BaseCategory != nil {
		base = *room.BaseCategory
	}
	return e.selector.SelectMini(ctx, categories.SelectionInput{
		Letters:               letters,
		UsedIDs:               room.UsedMiniCategoryIDs,
		FailedIDs:             room.FailedMiniCategoryIDs,
		BaseCategory:          base,
		ConsecutiveFailures:   consecutiveFailures,
		RecentGameCategories:  hist.Categories,
		RecentCategoryLetters: hist.CategoryLetters,
	})
}

// startNextRound stamps a new round on the locked room. The caller saves it
func (e *Engine) startNextRound(ctx context.Context, tx store.Tx, now time.Time, letters []string, hist playerHistory, fx *effects) error {
	room := tx.Room()
	mini, err := e.selectMini(ctx, room, letters, 0, hist)
	if err != nil {
		return err
	}

	room.RoundNumber++
	room.Letters = slices.Clone(letters)
	room.CurrentMiniCategory = mini.Name
	room.CurrentMiniID = mini.ID
	room.UsedMiniCategoryIDs = append(room.UsedMiniCategoryIDs, mini.ID)
	room.FailedRounds = 0
	room.ShuffleVotes = []string{}
	room.ClearRoundWinner()
	room.RoundStartTime = models.Ptr(now)
	room.UpdatedAt = now

	if err := tx.UpsertRoundHistory(models.RoundHistoryEntry{
		RoomID:       room.ID,
		RoundNumber:  room.RoundNumber,
		Letters:      room.Letters,
		MiniCategory: mini.Name,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	if room.Status == game_constants.STATUS_PLAYING {
		e.roundStartedEffects(room, tx.Players(), fx)
	}
	return nil
}

// roundStartedEffects records the category and letters the players are
// about to see
func (e *Engine) roundStartedEffects(room *models.Room, players []*models.Player, fx *effects) {
	event := redis_models.AnalyticsEvent{
		Type:        redis_models.EventRoundStarted,
		RoomID:      room.ID,
		RoundNumber: room.RoundNumber,
		CategoryID:  room.CurrentMiniID,
		Category:    room.CurrentMiniCategory,
	}
	pairs := lo.Map(room.Letters, func(l string, _ int) string {
		return categories.LetterPairKey(room.CurrentMiniCategory, l)
	})
	keys := historyKeys(players)

	fx.add(func(ctx context.Context) {
		e.sink.Enqueue(event)
		for _, key := range keys {
			if err := e.history.RecordCategoryLetters(ctx, key, pairs); err != nil {
				logger.Warnf("[HISTORY] recording category letters for %s: %v", key, err)
			}
		}
	})
}

// applyTimeout turns a round nobody won in time into a dead round: the
// category changes, the letters only change on the third dead round in a row
func (e *Engine) applyTimeout(ctx context.Context, tx store.Tx, now time.Time, fx *effects) error {
	room := tx.Room()
	if room.Status != game_constants.STATUS_PLAYING || room.HasWinner() || room.RoundStartTime == nil {
		return nil
	}
	if now.Sub(*room.RoundStartTime) <= e.cfg.RoundDuration {
		return nil
	}

	dead := redis_models.AnalyticsEvent{
		Type:        redis_models.EventDeadRound,
		RoomID:      room.ID,
		RoundNumber: room.RoundNumber,
		CategoryID:  room.CurrentMiniID,
		Category:    room.CurrentMiniCategory,
	}

	consecutive := room.FailedRounds + 1
	room.FailedRounds = consecutive
	if room.CurrentMiniID != "" && !slices.Contains(room.FailedMiniCategoryIDs, room.CurrentMiniID) {
		room.FailedMiniCategoryIDs = append(room.FailedMiniCategoryIDs, room.CurrentMiniID)
	}

	letters := room.Letters
	if room.FailedRounds >= game_constants.MAX_FAILED_ROUNDS {
		letters = e.letters.Generate()
		room.FailedRounds = 0
	}

	mini, err := e.selectMini(ctx, room, letters, consecutive, e.recentHistory(ctx, tx.Players()))
	if err != nil {
		return err
	}

	room.Letters = slices.Clone(letters)
	room.CurrentMiniCategory = mini.Name
	room.CurrentMiniID = mini.ID
	room.UsedMiniCategoryIDs = append(room.UsedMiniCategoryIDs, mini.ID)
	room.RoundStartTime = models.Ptr(now)
	room.ShuffleVotes = []string{}
	room.UpdatedAt = now

	if err := tx.UpsertRoundHistory(models.RoundHistoryEntry{
		RoomID:       room.ID,
		RoundNumber:  room.RoundNumber,
		Letters:      room.Letters,
		MiniCategory: mini.Name,
		CreatedAt:    now,
	}); err != nil {
		return err
	}
	if err := tx.SaveRoom(); err != nil {
		return err
	}

	fx.add(func(context.Context) { e.sink.Enqueue(dead) })
	e.roundStartedEffects(room, tx.Players(), fx)
	logger.Infof("[ROUND-TIMEOUT] room %s round %d dead (%d in a row), %q -> %q",
		room.ID, room.RoundNumber, consecutive, dead.Category, mini.Name)
	return nil
}

// applyWinAdvance moves a won round on once the overlay was shown, or for
// a tough-letter win once the bonus word is in or the safety timeout hit
func (e *Engine) applyWinAdvance(ctx context.Context, tx store.Tx, now time.Time, fx *effects) error {
	room := tx.Room()
	if room.Status != game_constants.STATUS_PLAYING || !room.HasWinner() || room.RoundWonAt == nil {
		return nil
	}

	elapsed := now.Sub(*room.RoundWonAt)
	awarded := []string{WinningLetter(room)}

	if ToughWin(room) {
		words, err := e.roundWords(tx, room, *room.RoundWinnerID)
		if err != nil {
			return err
		}
		bonusDone := len(words) >= game_constants.MAX_SUBMISSIONS_PER_ROUND
		if !bonusDone && now.Before(BonusDeadline(room, e.cfg)) {
			return nil
		}
		if bonusDone {
			awarded = append(awarded, string(words[1].Word[0]))
		}
	} else if elapsed < e.cfg.WinOverlay {
		return nil
	}

	next := room.Letters
	for _, l := range awarded {
		next = e.letters.ReplaceUsed(next, l)
	}
	return e.advanceRound(ctx, tx, now, next, "win", fx)
}

// roundWords are the words a player recorded in the current round, oldest first
func (e *Engine) roundWords(tx store.Tx, room *models.Room, playerID string) ([]models.UsedWord, error) {
	words, err := tx.UsedWords(room.CurrentMiniCategory)
	if err != nil {
		return nil, err
	}
	return lo.Filter(words, func(w models.UsedWord, _ int) bool {
		return w.PlayerID == playerID && w.RoundNumber == room.RoundNumber
	}), nil
}

// advanceRound starts the next round with the given letters and saves
func (e *Engine) advanceRound(ctx context.Context, tx store.Tx, now time.Time, letters []string, reason string, fx *effects) error {
	room := tx.Room()
	previous := room.RoundNumber
	if err := e.startNextRound(ctx, tx, now, letters, e.recentHistory(ctx, tx.Players()), fx); err != nil {
		return err
	}
	if err := tx.SaveRoom(); err != nil {
		return err
	}
	logger.Infof("[ROUND-ADVANCE] room %s round %d -> %d (%s), category %q, letters %v",
		room.ID, previous, room.RoundNumber, reason, room.CurrentMiniCategory, room.Letters)
	return nil
}
