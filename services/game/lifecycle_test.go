package game

import (
	game_constants "Wordrush/constants/game"
	redis_models "Wordrush/models/redis"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInactiveWaitingPlayersAreRemoved(t *testing.T) {
	h := newHarness(t)
	snap := h.waitingRoom("p1", "p2", "p3")
	roomID := snap.Room.ID

	h.clock.Advance(30 * time.Second)
	h.poll(roomID, "p3")

	h.clock.Advance(30 * time.Second)
	snap = h.poll(roomID, "p2")

	// p1 was unseen for 60s, p3 only for 30s
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "p2", snap.Players[0].PlayerID)
	assert.Equal(t, "p3", snap.Players[1].PlayerID)
	assert.Equal(t, "p2", snap.Room.HostID, "host goes to the oldest remaining player")
}

func TestInactivePlayersDuringMatch(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2", "p3")

	_, err := h.engine.VoteShuffle(h.ctx, roomID, "p1")
	require.NoError(t, err)

	h.clock.Advance(50 * time.Second)
	h.poll(roomID, "p3")
	h.clock.Advance(40 * time.Second)
	snap := h.poll(roomID, "p2")

	assert.Len(t, snap.Players, 2)
	assert.Equal(t, "p2", snap.Room.HostID)
	assert.NotContains(t, snap.Room.ShuffleVotes, "p1")
	assert.Equal(t, game_constants.STATUS_PLAYING, snap.Room.Status)
}

func TestActiveRoomToleratesShorterGaps(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")

	h.clock.Advance(61 * time.Second)
	snap := h.poll(roomID, "p2")
	assert.Len(t, snap.Players, 2, "60s is only the waiting-room limit")
}

func TestLeaveRoom(t *testing.T) {
	h := newHarness(t)
	snap := h.waitingRoom("p1", "p2")
	roomID := snap.Room.ID

	snap, err := h.engine.LeaveRoom(h.ctx, roomID, "p1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "p2", snap.Room.HostID)

	_, err = h.engine.LeaveRoom(h.ctx, roomID, "p1")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	snap, err = h.engine.LeaveRoom(h.ctx, roomID, "p2")
	require.NoError(t, err)
	assert.Nil(t, snap, "empty waiting rooms are deleted")

	_, err = h.engine.PollState(h.ctx, roomID, "p2")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestEmptiedMatchFinishes(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2")

	_, err := h.engine.LeaveRoom(h.ctx, roomID, "p1")
	require.NoError(t, err)
	snap, err := h.engine.LeaveRoom(h.ctx, roomID, "p2")
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, game_constants.STATUS_FINISHED, snap.Room.Status)
	assert.Empty(t, snap.Players)
	assert.Equal(t, game_constants.STATUS_FINISHED, h.room(roomID).Status)
}

func TestVoteShuffle(t *testing.T) {
	h := newHarness(t)
	roomID := h.playingRoom("p1", "p2", "p3")
	before := h.room(roomID)

	res, err := h.engine.VoteShuffle(h.ctx, roomID, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Votes)
	assert.Equal(t, 2, res.Needed)
	assert.False(t, res.Shuffled)

	// voting twice counts once
	res, err = h.engine.VoteShuffle(h.ctx, roomID, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Votes)
	assert.False(t, res.Shuffled)

	res, err = h.engine.VoteShuffle(h.ctx, roomID, "p2")
	require.NoError(t, err)
	assert.True(t, res.Shuffled)

	room := res.Snapshot.Room
	assert.Equal(t, before.RoundNumber+1, room.RoundNumber)
	assert.Empty(t, room.ShuffleVotes)
	assert.NotEqual(t, before.CurrentMiniID, room.CurrentMiniID)
	assert.Equal(t, *before.BaseCategory, *room.BaseCategory)
	assert.Len(t, room.Letters, 5)
	assert.Equal(t, h.clock.Now(), *room.RoundStartTime)
}

func TestVoteShuffleRules(t *testing.T) {
	h := newHarness(t)
	snap := h.waitingRoom("p1", "p2")
	_, err := h.engine.VoteShuffle(h.ctx, snap.Room.ID, "p1")
	assert.ErrorIs(t, err, ErrWrongStatus)

	roomID := h.playingRoom("q1", "q2")
	_, err = h.engine.VoteShuffle(h.ctx, roomID, "stranger")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	h.setRound(roomID, []string{"J", "A", "B", "S", "T"}, "Food")
	require.True(t, h.submit(roomID, "q1", "BACON").Accepted)
	_, err = h.engine.VoteShuffle(h.ctx, roomID, "q2")
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestStaleRoomsAreSwept(t *testing.T) {
	h := newHarness(t)
	old := h.waitingRoom("p1")

	h.clock.Advance(game_constants.STALE_ROOM_AGE + time.Minute)
	fresh := h.waitingRoom("p2")
	h.poll(fresh.Room.ID, "p2")

	_, err := h.store.GetRoom(h.ctx, old.Room.ID)
	assert.Error(t, err)
	_, err = h.store.GetRoom(h.ctx, fresh.Room.ID)
	assert.NoError(t, err)
}

// tutorialRoom starts a match where only the given players finished the tutorial
func (h *harness) tutorialRoom(done []string, pending ...string) string {
	h.t.Helper()
	snap := h.waitingRoom(append(slices.Clone(done), pending...)...)
	for _, id := range done {
		_, err := h.engine.CompleteTutorial(h.ctx, snap.Room.ID, id)
		require.NoError(h.t, err)
	}
	snap, err := h.engine.StartMatch(h.ctx, snap.Room.ID, done[0])
	require.NoError(h.t, err)
	require.Equal(h.t, game_constants.STATUS_TUTORIAL, snap.Room.Status)
	return snap.Room.ID
}

func TestLastTutorialPlayerLeavingStartsRound(t *testing.T) {
	h := newHarness(t)
	roomID := h.tutorialRoom([]string{"p1", "p2"}, "p3")

	h.clock.Advance(5 * time.Second)
	_, err := h.engine.LeaveRoom(h.ctx, roomID, "p3")
	require.NoError(t, err)
	started := h.clock.Now()

	h.clock.Advance(time.Second)
	snap := h.poll(roomID, "p1")
	assert.Equal(t, game_constants.STATUS_PLAYING, snap.Room.Status)
	assert.Equal(t, PhaseActive, snap.Phase)
	require.NotNil(t, snap.Room.RoundStartTime)
	assert.Equal(t, started, *snap.Room.RoundStartTime)
	assert.Nil(t, snap.Room.TutorialStartedAt)
	assert.Equal(t, (game_constants.ROUND_DURATION - time.Second).Milliseconds(), snap.TimeRemainingMs)
	assert.Len(t, h.sink.ofType(redis_models.EventRoundStarted), 1)

	// the timer is live, so the round can time out
	h.clock.Advance(game_constants.ROUND_DURATION)
	snap = h.poll(roomID, "p1")
	assert.Equal(t, 1, snap.Room.FailedRounds)
}

func TestInactiveTutorialPlayerIsDroppedAndRoundStarts(t *testing.T) {
	h := newHarness(t)
	roomID := h.tutorialRoom([]string{"p1", "p2"}, "p3")

	h.clock.Advance(50 * time.Second)
	h.poll(roomID, "p2")
	h.clock.Advance(45 * time.Second)
	snap := h.poll(roomID, "p1")

	require.Len(t, snap.Players, 2)
	assert.Equal(t, game_constants.STATUS_PLAYING, snap.Room.Status)
	require.NotNil(t, snap.Room.RoundStartTime)
	assert.Equal(t, h.clock.Now(), *snap.Room.RoundStartTime)
	assert.Equal(t, game_constants.ROUND_DURATION.Milliseconds(), snap.TimeRemainingMs)
}

func TestLeavingTutorialKeepsWaitingForOthers(t *testing.T) {
	h := newHarness(t)
	roomID := h.tutorialRoom([]string{"p1"}, "p2", "p3")

	_, err := h.engine.LeaveRoom(h.ctx, roomID, "p3")
	require.NoError(t, err)

	snap := h.poll(roomID, "p1")
	assert.Equal(t, game_constants.STATUS_TUTORIAL, snap.Room.Status)
	assert.Nil(t, snap.Room.RoundStartTime)
	assert.Empty(t, h.sink.ofType(redis_models.EventRoundStarted))
}

func TestTutorialTimesOut(t *testing.T) {
	h := newHarness(t)
	roomID := h.tutorialRoom([]string{"p1"}, "p2")
	require.NotNil(t, h.room(roomID).TutorialStartedAt)

	// both keep polling but p2 never finishes
	for range 3 {
		h.clock.Advance(game_constants.TUTORIAL_TIMEOUT/4 + time.Second)
		h.poll(roomID, "p2")
		snap := h.poll(roomID, "p1")
		require.Equal(t, game_constants.STATUS_TUTORIAL, snap.Room.Status)
	}

	h.clock.Advance(game_constants.TUTORIAL_TIMEOUT / 4)
	h.poll(roomID, "p2")
	snap := h.poll(roomID, "p1")
	assert.Equal(t, game_constants.STATUS_PLAYING, snap.Room.Status)
	require.NotNil(t, snap.Room.RoundStartTime)
	assert.Nil(t, snap.Room.TutorialStartedAt)
	assert.Len(t, snap.Players, 2)
	assert.Len(t, h.sink.ofType(redis_models.EventRoundStarted), 1)
}
