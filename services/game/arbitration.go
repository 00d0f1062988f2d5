package game

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/logger"
	"Wordrush/models"
	redis_models "Wordrush/models/redis"
	"Wordrush/services/store"
	"Wordrush/services/validation"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Kinds of submission
const (
	KindMini  = "mini"
	KindBonus = "bonus"
	KindGrand = "grand"
)

type SubmitRequest struct {
	RoomID   string
	PlayerID string
	Word     string
	Grand    bool
}

// SubmitResult is the outcome of a submission that reached arbitration.
// A lost race or an invalid word is a result, not an error
type SubmitResult struct {
	Accepted bool      `json:"accepted"`
	Code     string    `json:"code,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Kind     string    `json:"kind"`
	Word     string    `json:"word"`
	Letter   string    `json:"letter,omitempty"`
	Snapshot *Snapshot `json:"snapshot"`
}

// errLost carries a loss out of the locked section without writing anything
type errLost struct {
	code   string
	reason string
}

func (e *errLost) Error() string { return e.reason }

func lost(code, reason string) error {
	return &errLost{code: code, reason: reason}
}

// NormalizeWord upper-cases a submitted word and checks it is plain letters
func NormalizeWord(raw string) (string, error) {
	word := strings.ToUpper(strings.TrimSpace(raw))
	if word == "" {
		return "", ErrInvalidInput.With("Word is required")
	}
	if len(word) > game_constants.MAX_WORD_LENGTH {
		return "", ErrInvalidInput.With("Word is too long")
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidInput.With("Words may only contain letters A-Z")
		}
	}
	return word, nil
}

// IsSubMultiset reports whether word can be spelled from letters, using
// each collected letter at most once
func IsSubMultiset(word string, letters []string) bool {
	available := lo.CountValues(lo.Map(letters, func(l string, _ int) string {
		return strings.ToUpper(l)
	}))
	for _, r := range strings.ToUpper(word) {
		l := string(r)
		if available[l] == 0 {
			return false
		}
		available[l]--
	}
	return true
}

// SubmitWord arbitrates a round or grand submission. The word is judged
// outside the room lock, then every precondition is checked again under
// the lock before the letter is awarded, so of two racing submissions for
// the same round exactly one wins
func (e *Engine) SubmitWord(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	word, err := NormalizeWord(req.Word)
	if err != nil {
		return nil, err
	}
	req.Word = word

	room, err := e.store.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	players, err := e.store.ListPlayers(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	player, ok := lo.Find(players, func(p *models.Player) bool { return p.PlayerID == req.PlayerID })
	if !ok {
		return nil, ErrPlayerNotFound
	}

	if req.Grand {
		return e.submitGrand(ctx, req, room, player)
	}
	return e.submitRound(ctx, req, room)
}

// judge asks the oracle about a word. A failed call rejects the word,
// whatever verdict came with the error
func (e *Engine) judge(ctx context.Context, req validation.Request) validation.Verdict {
	verdict, err := e.oracle.Validate(ctx, req)
	if err != nil {
		logger.Warnf("[ORACLE-ERROR] judging %q for %q: %v", req.Word, req.Category, err)
		return validation.Verdict{Reason: "Word validation is unavailable"}
	}
	return verdict
}

func (e *Engine) submitRound(ctx context.Context, req SubmitRequest, room *models.Room) (*SubmitResult, error) {
	if room.Status != game_constants.STATUS_PLAYING {
		return nil, ErrWrongStatus.With("No round in progress")
	}

	kind := KindMini
	allowed := room.Letters
	if room.HasWinner() {
		if !room.IsWinner(req.PlayerID) {
			return e.reject(ctx, req, room, KindMini, LossRoundWon, "Someone else already won this round", false)
		}
		if !ToughWin(room) {
			return e.reject(ctx, req, room, KindBonus, LossNoBonus, "No bonus word for this round", false)
		}
		kind = KindBonus
		// the bonus word uses one of the letters the winning word left
		if i := slices.Index(allowed, WinningLetter(room)); i >= 0 {
			allowed = slices.Delete(slices.Clone(allowed), i, i+1)
		}
	}

	if !slices.Contains(allowed, req.Word[:1]) {
		return e.reject(ctx, req, room, kind, LossWrongLetter, "Word must start with one of the round letters", false)
	}

	used, err := e.store.ListUsedWords(ctx, room.ID, room.CurrentMiniCategory)
	if err != nil {
		return nil, err
	}
	usedWords := lo.Map(used, func(w models.UsedWord, _ int) string { return w.Word })
	if lo.ContainsBy(usedWords, func(w string) bool { return strings.EqualFold(w, req.Word) }) {
		return e.reject(ctx, req, room, kind, LossWordUsed, "Word already used in this category", false)
	}

	verdict := e.judge(ctx, validation.Request{
		Word:                req.Word,
		Category:            room.CurrentMiniCategory,
		AllowedStartLetters: allowed,
		UsedWords:           usedWords,
	})
	if !verdict.Accepted() {
		reason := verdict.Reason
		if reason == "" {
			reason = "Word does not fit " + room.CurrentMiniCategory
		}
		return e.reject(ctx, req, room, kind, LossInvalidWord, reason, true)
	}

	// the word is good, now race for the letter
	var res *SubmitResult
	var fx effects
	err = e.withRoom(ctx, req.RoomID, func(tx store.Tx) error {
		current := tx.Room()
		p := tx.Player(req.PlayerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if current.Status != game_constants.STATUS_PLAYING ||
			current.RoundNumber != room.RoundNumber ||
			current.CurrentMiniID != room.CurrentMiniID {
			return lost(LossRoundChanged, "The round moved on before your word arrived")
		}

		now := e.now()
		if kind == KindMini {
			if current.HasWinner() {
				return lost(LossRoundWon, "Someone else got there first")
			}
		} else {
			if !current.IsWinner(req.PlayerID) {
				return lost(LossRoundChanged, "The round moved on before your word arrived")
			}
			count, err := tx.CountWords(req.PlayerID, current.RoundNumber)
			if err != nil {
				return err
			}
			if count >= game_constants.MAX_SUBMISSIONS_PER_ROUND {
				return lost(LossBonusUsed, "Bonus word already played")
			}
			if current.RoundWonAt != nil && !now.Before(BonusDeadline(current, e.cfg)) {
				return lost(LossBonusClosed, "The bonus window has closed")
			}
		}

		taken, err := tx.WordUsed(current.CurrentMiniCategory, req.Word)
		if err != nil {
			return err
		}
		if taken {
			return lost(LossWordUsed, "Word already used in this category")
		}

		letter := req.Word[:1]
		if kind == KindMini {
			current.RoundWinnerID = models.Ptr(req.PlayerID)
			current.RoundWinningWord = models.Ptr(req.Word)
			current.RoundWonAt = models.Ptr(now)
			current.ShuffleVotes = []string{}
			if ToughWin(current) && current.RoundStartTime != nil {
				current.RoundStartTime = models.Ptr(current.RoundStartTime.Add(e.cfg.ToughBonusExtension))
			}
			current.UpdatedAt = now
			if err := tx.SaveRoom(); err != nil {
				return err
			}
		}

		p.CollectedLetters = append(p.CollectedLetters, letter)
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}
		if err := tx.AddUsedWord(models.UsedWord{
			RoomID:      current.ID,
			PlayerID:    req.PlayerID,
			RoundNumber: current.RoundNumber,
			Category:    current.CurrentMiniCategory,
			Word:        req.Word,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		snap, err := e.snapshotTx(tx, now)
		if err != nil {
			return err
		}
		res = &SubmitResult{Accepted: true, Kind: kind, Word: req.Word, Letter: letter, Snapshot: snap}

		event := redis_models.AnalyticsEvent{
			Type:        redis_models.EventWordAccepted,
			RoomID:      current.ID,
			PlayerID:    req.PlayerID,
			RoundNumber: current.RoundNumber,
			CategoryID:  current.CurrentMiniID,
			Category:    current.CurrentMiniCategory,
			Word:        req.Word,
			Bonus:       kind == KindBonus,
		}
		fx.add(func(context.Context) { e.sink.Enqueue(event) })
		logger.Infof("[WORD-ACCEPTED] room %s round %d %s %q by %s", current.ID, current.RoundNumber, kind, req.Word, req.PlayerID)
		return nil
	})

	var l *errLost
	if errors.As(err, &l) {
		return e.reject(ctx, req, room, kind, l.code, l.reason, false)
	}
	if err != nil {
		return nil, err
	}
	fx.run(ctx)
	return res, nil
}

func (e *Engine) submitGrand(ctx context.Context, req SubmitRequest, room *models.Room, player *models.Player) (*SubmitResult, error) {
	if room.Status == game_constants.STATUS_FINISHED {
		return e.reject(ctx, req, room, KindGrand, LossMatchAlreadyDone, "The match is already over", false)
	}
	if room.BaseCategory == nil {
		return e.reject(ctx, req, room, KindGrand, LossNoBaseCategory, "The match has not started", false)
	}
	if len(player.CollectedLetters) == 0 {
		return e.reject(ctx, req, room, KindGrand, LossNoLetters, "Collect some letters first", false)
	}
	if len(req.Word) < game_constants.MIN_GRAND_WORD_LENGTH {
		return e.reject(ctx, req, room, KindGrand, LossTooShort, "Grand words need at least 4 letters", false)
	}
	if !IsSubMultiset(req.Word, player.CollectedLetters) {
		return e.reject(ctx, req, room, KindGrand, LossLettersMissing, "You have not collected those letters", false)
	}

	base := *room.BaseCategory
	used, err := e.store.ListUsedWords(ctx, room.ID, base)
	if err != nil {
		return nil, err
	}
	verdict := e.judge(ctx, validation.Request{
		Word:      req.Word,
		Category:  base,
		UsedWords: lo.Map(used, func(w models.UsedWord, _ int) string { return w.Word }),
	})
	if !verdict.Accepted() {
		reason := verdict.Reason
		if reason == "" {
			reason = "Word does not fit " + base
		}
		return e.reject(ctx, req, room, KindGrand, LossInvalidWord, reason, true)
	}

	var res *SubmitResult
	var fx effects
	err = e.withRoom(ctx, req.RoomID, func(tx store.Tx) error {
		current := tx.Room()
		p := tx.Player(req.PlayerID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if current.Status == game_constants.STATUS_FINISHED {
			return lost(LossMatchAlreadyDone, "Someone else finished the match first")
		}
		if current.BaseCategory == nil || *current.BaseCategory != base {
			return lost(LossRoundChanged, "The match changed before your word arrived")
		}
		if !IsSubMultiset(req.Word, p.CollectedLetters) {
			return lost(LossLettersMissing, "You have not collected those letters")
		}

		now := e.now()
		current.Status = game_constants.STATUS_FINISHED
		current.WinnerID = models.Ptr(req.PlayerID)
		current.WinningGrandWord = models.Ptr(req.Word)
		current.ShuffleVotes = []string{}
		current.UpdatedAt = now
		if err := tx.SaveRoom(); err != nil {
			return err
		}
		p.LastSeenAt = now
		if err := tx.SavePlayer(p); err != nil {
			return err
		}
		if err := tx.AddUsedWord(models.UsedWord{
			RoomID:      current.ID,
			PlayerID:    req.PlayerID,
			RoundNumber: current.RoundNumber,
			Category:    base,
			Word:        req.Word,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		snap, err := e.snapshotTx(tx, now)
		if err != nil {
			return err
		}
		res = &SubmitResult{Accepted: true, Kind: KindGrand, Word: req.Word, Snapshot: snap}
		e.matchFinishedEffects(current, tx.Players(), req.PlayerID, now, &fx)
		logger.Infof("[MATCH-WON] room %s won by %s with %q (%s)", current.ID, req.PlayerID, req.Word, base)
		return nil
	})

	var l *errLost
	if errors.As(err, &l) {
		return e.reject(ctx, req, room, KindGrand, l.code, l.reason, false)
	}
	if err != nil {
		return nil, err
	}
	fx.run(ctx)
	return res, nil
}

// matchFinishedEffects stores the match in every player's history so the
// next games avoid its categories
func (e *Engine) matchFinishedEffects(room *models.Room, players []*models.Player, winnerID string, now time.Time, fx *effects) {
	record := redis_models.GameRecord{
		RoomID:       room.ID,
		BaseCategory: *room.BaseCategory,
		MiniCategories: lo.FilterMap(room.UsedMiniCategoryIDs, func(id string, _ int) (string, bool) {
			c, ok := e.selector.ByID(id)
			return c.Name, ok
		}),
		FinishedAt: now.Unix(),
	}
	event := redis_models.AnalyticsEvent{
		Type:        redis_models.EventMatchFinished,
		RoomID:      room.ID,
		PlayerID:    winnerID,
		RoundNumber: room.RoundNumber,
		Category:    *room.BaseCategory,
		Word:        *room.WinningGrandWord,
		Grand:       true,
	}
	keys := historyKeys(players)

	fx.add(func(ctx context.Context) {
		e.sink.Enqueue(event)
		for _, key := range keys {
			if err := e.history.RecordGame(ctx, key, record); err != nil {
				logger.Warnf("[HISTORY] recording game for %s: %v", key, err)
			}
		}
	})
}

// reject reports a submission that lost. judged says the oracle refused the
// word itself, which is what counts toward a category's difficulty
func (e *Engine) reject(ctx context.Context, req SubmitRequest, room *models.Room, kind, code, reason string, judged bool) (*SubmitResult, error) {
	category := room.CurrentMiniCategory
	categoryID := room.CurrentMiniID
	if kind == KindGrand && room.BaseCategory != nil {
		category = *room.BaseCategory
		categoryID = ""
	}
	e.sink.Enqueue(redis_models.AnalyticsEvent{
		Type:           redis_models.EventWordRejected,
		RoomID:         room.ID,
		PlayerID:       req.PlayerID,
		RoundNumber:    room.RoundNumber,
		CategoryID:     categoryID,
		Category:       category,
		Word:           req.Word,
		Reason:         code,
		Bonus:          kind == KindBonus,
		Grand:          kind == KindGrand,
		JudgedByOracle: judged,
	})
	logger.Debugf("[WORD-REJECTED] room %s %s %q by %s: %s", room.ID, kind, req.Word, req.PlayerID, code)

	snap, err := e.readSnapshot(ctx, room.ID)
	if err != nil && !errors.Is(err, ErrRoomNotFound) {
		return nil, err
	}
	return &SubmitResult{Kind: kind, Code: code, Reason: reason, Word: req.Word, Snapshot: snap}, nil
}
