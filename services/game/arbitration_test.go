package game

import (
	game_constants "Wordrush/constants/game"
	redis_models "Wordrush/models/redis"
	"Wordrush/services/validation"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	word, err := NormalizeWord("  quail ")
	require.NoError(t, err)
	assert.Equal(t, "QUAIL", word)

	for _, bad := range []string{"", "   ", "ice-cream", "café", "abc1", string(make([]byte, 33))} {
		_, err := NormalizeWord(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "%q", bad)
	}
}

func TestIsSubMultiset(t *testing.T) {
	collected := []string{"S", "H", "E", "E", "P"}

	assert.True(t, IsSubMultiset("SHEEP", collected))
	assert.True(t, IsSubMultiset("HEEP", collected))
	assert.True(t, IsSubMultiset("peeh", collected))
	assert.False(t, IsSubMultiset("SHEEPS", collected))
	assert.False(t, IsSubMultiset("SHIP", collected))
	assert.False(t, IsSubMultiset("EEEP", collected))
}

func TestSubmitWordWinsRound(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")

	res := h.submit(roomID, "p2", "bacon")
	require.True(t, res.Accepted, res.Reason)
	assert.Equal(t, KindMini, res.Kind)
	assert.Equal(t, "BACON", res.Word)
	assert.Equal(t, "B", res.Letter)
	assert.Equal(t, PhaseRoundEnd, res.Snapshot.Phase)

	room := h.room(roomID)
	require.True(t, room.IsWinner("p2"))
	assert.Equal(t, "BACON", *room.RoundWinningWord)
	assert.Equal(t, []string{"B"}, h.player(roomID, "p2").CollectedLetters)

	accepted := h.sink.ofType(redis_models.EventWordAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, "food", accepted[0].CategoryID)

	// the round is taken
	res = h.submit(roomID, "p1", "SALAD")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossRoundWon, res.Code)

	// a non-tough winner has no bonus word
	res = h.submit(roomID, "p2", "SALAD")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossNoBonus, res.Code)
}

func TestSubmitWordRejections(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")

	res := h.submit(roomID, "p1", "PIZZA")
	assert.Equal(t, LossWrongLetter, res.Code)

	res = h.submit(roomID, "p1", "SOFA")
	assert.Equal(t, LossInvalidWord, res.Code)
	assert.NotEmpty(t, res.Reason)
	require.NotNil(t, res.Snapshot)
	assert.False(t, h.room(roomID).HasWinner())

	rejected := h.sink.ofType(redis_models.EventWordRejected)
	require.Len(t, rejected, 2)
	assert.False(t, rejected[0].JudgedByOracle)
	assert.True(t, rejected[1].JudgedByOracle)

	_, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: roomID, PlayerID: "p1", Word: "b4con"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: roomID, PlayerID: "stranger", Word: "BACON"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: "missing", PlayerID: "p1", Word: "BACON"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSubmitWordOutsideRound(t *testing.T) {
	h := newHarness(t)
	snap := h.waitingRoom("p1", "p2")

	_, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: snap.Room.ID, PlayerID: "p1", Word: "BACON"})
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestSubmitWordRejectsReuseInCategory(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")
	require.True(t, h.submit(roomID, "p1", "TOAST").Accepted)

	h.clock.Advance(game_constants.WIN_OVERLAY)
	snap := h.poll(roomID, "p1")
	require.Equal(t, 2, snap.Room.RoundNumber)

	// same category again in a later round
	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")
	res := h.submit(roomID, "p2", "toast")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossWordUsed, res.Code)
}

func TestToughLetterWinOpensBonus(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"Q", "A", "S", "E", "T"}, "Food")
	start := *h.room(roomID).RoundStartTime

	h.clock.Advance(10 * time.Second)
	res := h.submit(roomID, "p1", "QUICHE")
	require.True(t, res.Accepted, res.Reason)
	assert.Equal(t, PhaseBonus, res.Snapshot.Phase)

	room := h.room(roomID)
	assert.Equal(t, start.Add(game_constants.TOUGH_BONUS_EXTENSION), *room.RoundStartTime)

	// the winning letter cannot start the bonus word
	res = h.submit(roomID, "p1", "QUINOA")
	assert.Equal(t, LossWrongLetter, res.Code)

	// only the winner plays the bonus
	res = h.submit(roomID, "p2", "SALAD")
	assert.Equal(t, LossRoundWon, res.Code)

	res = h.submit(roomID, "p1", "SALAD")
	require.True(t, res.Accepted, res.Reason)
	assert.Equal(t, KindBonus, res.Kind)
	assert.Equal(t, PhaseRoundEnd, res.Snapshot.Phase)
	assert.Equal(t, []string{"Q", "S"}, h.player(roomID, "p1").CollectedLetters)

	res = h.submit(roomID, "p1", "TOAST")
	assert.Equal(t, LossBonusUsed, res.Code)

	// the bonus word ends the window, the next poll advances
	snap := h.poll(roomID, "p2")
	assert.Equal(t, 2, snap.Room.RoundNumber)
	assert.False(t, snap.Room.HasWinner())
	assert.Equal(t, PhaseActive, snap.Phase)
}

func TestBonusWindowCloses(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"Q", "A", "S", "E", "T"}, "Food")
	require.True(t, h.submit(roomID, "p1", "QUICHE").Accepted)

	h.clock.Advance(game_constants.BONUS_SAFETY_TIMEOUT)
	res := h.submit(roomID, "p1", "SALAD")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossBonusClosed, res.Code)
}

func TestLateToughWinBonusEndsWithRound(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"Q", "A", "S", "E", "T"}, "Food")
	start := *h.room(roomID).RoundStartTime

	h.clock.Advance(58 * time.Second)
	require.True(t, h.submit(roomID, "p1", "QUICHE").Accepted)
	roundEnd := start.Add(game_constants.TOUGH_BONUS_EXTENSION + game_constants.ROUND_DURATION)

	// the countdown stops at the round end, before the safety timeout
	h.clock.Advance(roundEnd.Sub(h.clock.Now()) - time.Second)
	snap := h.poll(roomID, "p2")
	assert.Equal(t, PhaseBonus, snap.Phase)
	assert.Equal(t, int64(1000), snap.TimeRemainingMs)

	// and the submission check agrees with it
	h.clock.Advance(time.Second)
	res := h.submit(roomID, "p1", "SALAD")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossBonusClosed, res.Code)

	snap = h.poll(roomID, "p2")
	assert.Equal(t, 2, snap.Room.RoundNumber)
}

func TestConcurrentSubmissionsHaveOneWinner(t *testing.T) {
	h := newHarness(t)
	players := []string{"p1", "p2", "p3", "p4", "p5"}
	roomID := h.playingRoom(players...)
	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")

	words := []string{"BACON", "BREAD", "SALAD", "STEAK", "TOAST"}
	results := make([]*SubmitResult, len(players))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range players {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: roomID, PlayerID: players[i], Word: words[i]})
			if err != nil {
				panic(fmt.Sprintf("submit %s: %v", words[i], err))
			}
			results[i] = res
		}(i)
	}
	close(start)
	wg.Wait()

	winners := lo.Filter(results, func(r *SubmitResult, _ int) bool { return r.Accepted })
	require.Len(t, winners, 1)
	for _, r := range results {
		if !r.Accepted {
			assert.Equal(t, LossRoundWon, r.Code)
		}
	}

	room := h.room(roomID)
	require.NotNil(t, room.RoundWinningWord)
	assert.Equal(t, winners[0].Word, *room.RoundWinningWord)

	collected := lo.SumBy(players, func(id string) int { return len(h.player(roomID, id).CollectedLetters) })
	assert.Equal(t, 1, collected)
}

func TestGrandSubmission(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.giveLetters(roomID, "p1", "S", "H", "E", "E", "P")

	grand := func(playerID, word string) *SubmitResult {
		res, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: roomID, PlayerID: playerID, Word: word, Grand: true})
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, LossNoLetters, grand("p2", "SHEEP").Code)
	assert.Equal(t, LossTooShort, grand("p1", "EEP").Code)
	assert.Equal(t, LossLettersMissing, grand("p1", "SHEEPS").Code)
	assert.Equal(t, LossLettersMissing, grand("p1", "SHIP").Code)
	// spelled from the letters but not an animal
	assert.Equal(t, LossInvalidWord, grand("p1", "HEEP").Code)
	assert.Equal(t, game_constants.STATUS_PLAYING, h.room(roomID).Status)

	res := grand("p1", "SHEEP")
	require.True(t, res.Accepted, res.Reason)
	assert.Equal(t, KindGrand, res.Kind)
	assert.Equal(t, PhaseFinished, res.Snapshot.Phase)

	room := h.room(roomID)
	assert.Equal(t, game_constants.STATUS_FINISHED, room.Status)
	require.NotNil(t, room.WinnerID)
	assert.Equal(t, "p1", *room.WinnerID)
	assert.Equal(t, "SHEEP", *room.WinningGrandWord)

	assert.Equal(t, LossMatchAlreadyDone, grand("p1", "SHEEP").Code)

	for _, key := range []string{"player:p1", "player:p2"} {
		require.Len(t, h.history.games[key], 1, key)
		assert.Equal(t, "Animals", h.history.games[key][0].BaseCategory)
		assert.NotEmpty(t, h.history.games[key][0].MiniCategories)
	}
	assert.Len(t, h.sink.ofType(redis_models.EventMatchFinished), 1)
}

func TestGrandSubmissionNeedsStartedMatch(t *testing.T) {
	h := newHarness(t)
	snap := h.waitingRoom("p1", "p2")

	res, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: snap.Room.ID, PlayerID: "p1", Word: "SHEEP", Grand: true})
	require.NoError(t, err)
	assert.Equal(t, LossNoBaseCategory, res.Code)
}

// brokenOracle fails every call while still claiming the word is fine
type brokenOracle struct{}

func (brokenOracle) Validate(ctx context.Context, req validation.Request) (validation.Verdict, error) {
	return validation.Verdict{Valid: true, FitsCategory: true}, errors.New("upstream timeout")
}

func TestOracleErrorRejectsWord(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")
	h.setRound(roomID, []string{"B", "A", "S", "E", "T"}, "Food")
	h.giveLetters(roomID, "p1", "S", "H", "E", "E", "P")
	// no fail-closed wrapper in front of the oracle
	h.engine.oracle = brokenOracle{}

	res := h.submit(roomID, "p1", "BACON")
	assert.False(t, res.Accepted)
	assert.Equal(t, LossInvalidWord, res.Code)
	assert.False(t, h.room(roomID).HasWinner())

	res, err := h.engine.SubmitWord(h.ctx, SubmitRequest{RoomID: roomID, PlayerID: "p1", Word: "SHEEP", Grand: true})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, LossInvalidWord, res.Code)
	assert.Equal(t, game_constants.STATUS_PLAYING, h.room(roomID).Status)
}
