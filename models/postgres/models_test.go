package postgres_test

import (
	"Wordrush/models"
	"Wordrush/models/postgres"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestRoomRowKeepsRoundState(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	won := start.Add(20 * time.Second)
	room := &models.Room{
		ID:                    "room-1",
		Code:                  "AB3D",
		Status:                "playing",
		HostID:                "p1",
		RoomType:              "public",
		MinPlayers:            2,
		MaxPlayers:            8,
		PreferredPlayers:      4,
		RoundNumber:           3,
		FailedRounds:          1,
		Letters:               []string{"Q", "A", "S", "E", "T"},
		BaseCategory:          models.Ptr("Animals"),
		CurrentMiniCategory:   "Food",
		CurrentMiniID:         "food",
		RoundStartTime:        &start,
		RoundWinnerID:         models.Ptr("p2"),
		RoundWinningWord:      models.Ptr("QUICHE"),
		RoundWonAt:            &won,
		TutorialStartedAt:     &start,
		ShuffleVotes:          []string{"p1"},
		UsedMiniCategoryIDs:   []string{"jobs", "food"},
		FailedMiniCategoryIDs: []string{"jobs"},
		CreatedAt:             start.Add(-time.Hour),
		UpdatedAt:             won,
	}

	got := postgres.RoomFromModel(room).ToModel()
	if diff := cmp.Diff(room, got); diff != "" {
		t.Errorf("room changed through its row (-want +got):\n%s", diff)
	}
}

func TestRoomRowNormalizesEmptyLists(t *testing.T) {
	row := postgres.RoomFromModel(&models.Room{ID: "room-1"})
	assert.JSONEq(t, `[]`, string(row.Letters))
	assert.JSONEq(t, `[]`, string(row.ShuffleVotes))

	// rows written before a column existed, or by hand
	row.Letters = nil
	row.ShuffleVotes = datatypes.JSON(`{"not":"a list"}`)
	m := row.ToModel()
	assert.NotNil(t, m.Letters)
	assert.Empty(t, m.Letters)
	assert.NotNil(t, m.ShuffleVotes)
	assert.Empty(t, m.ShuffleVotes)
}

func TestPlayerRow(t *testing.T) {
	joined := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	player := &models.Player{
		RoomID:           "room-1",
		PlayerID:         "p1",
		UserID:           models.Ptr("user-9"),
		DisplayName:      "Alice",
		CollectedLetters: []string{"S", "H", "E", "E", "P"},
		TutorialComplete: true,
		IsReady:          true,
		JoinedAt:         joined,
		LastSeenAt:       joined.Add(time.Minute),
	}

	got := postgres.PlayerFromModel(player).ToModel()
	if diff := cmp.Diff(player, got); diff != "" {
		t.Errorf("player changed through its row (-want +got):\n%s", diff)
	}
}

func TestHistoryRows(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := models.RoundHistoryEntry{RoomID: "room-1", RoundNumber: 2, Letters: []string{"J", "A", "B", "S", "T"}, MiniCategory: "Food", CreatedAt: at}
	assert.Equal(t, entry, postgres.RoundHistoryFromModel(&entry).ToModel())

	word := models.UsedWord{RoomID: "room-1", PlayerID: "p1", RoundNumber: 2, Category: "Food", Word: "BACON", CreatedAt: at}
	assert.Equal(t, word, postgres.UsedWordFromModel(&word).ToModel())
}
