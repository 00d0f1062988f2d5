package game

import (
	game_constants "Wordrush/constants/game"
	"Wordrush/models"
	"Wordrush/services/letters"
	"time"

	"github.com/samber/lo"
)

// Phase is what the client should be showing. It is derived from the
// persisted room on every read and never stored
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseTutorial Phase = "tutorial"
	PhaseActive   Phase = "active"
	PhaseBonus    Phase = "bonus"
	PhaseRoundEnd Phase = "round_end"
	PhaseFinished Phase = "finished"
)

// Snapshot is the room as returned to every caller
type Snapshot struct {
	Room               *models.Room     `json:"room"`
	Players            []*models.Player `json:"players"`
	Phase              Phase            `json:"phase"`
	TimeRemainingMs    int64            `json:"time_remaining_ms"`
	ShuffleVotesNeeded int              `json:"shuffle_votes_needed"`
	ServerTime         time.Time        `json:"server_time"`
}

// ShuffleMajority is the vote count that forces a new round
func ShuffleMajority(playerCount int) int {
	return playerCount/2 + 1
}

// WinningLetter is the letter a winning word collects
func WinningLetter(room *models.Room) string {
	if room.RoundWinningWord == nil || *room.RoundWinningWord == "" {
		return ""
	}
	return string((*room.RoundWinningWord)[0])
}

// ToughWin reports whether the current round was won with a tough letter
func ToughWin(room *models.Room) bool {
	return room.HasWinner() && letters.IsTough(WinningLetter(room))
}

// BonusDeadline is when a tough-letter win stops taking the bonus word: the
// safety timeout after the win, capped by the end of the extended round.
// The room must have a win time
func BonusDeadline(room *models.Room, cfg Config) time.Time {
	deadline := room.RoundWonAt.Add(cfg.BonusSafetyTimeout)
	if room.RoundStartTime != nil {
		if roundEnd := room.RoundStartTime.Add(cfg.RoundDuration); roundEnd.Before(deadline) {
			return roundEnd
		}
	}
	return deadline
}

// DerivePhase maps the stored room onto the client phase. bonusUsed says
// whether the round winner already recorded the bonus word
func DerivePhase(room *models.Room, now time.Time, cfg Config, bonusUsed bool) Phase {
	switch room.Status {
	case game_constants.STATUS_WAITING:
		return PhaseWaiting
	case game_constants.STATUS_TUTORIAL:
		return PhaseTutorial
	case game_constants.STATUS_FINISHED:
		return PhaseFinished
	}

	if !room.HasWinner() {
		return PhaseActive
	}
	if ToughWin(room) && !bonusUsed && room.RoundWonAt != nil && now.Before(BonusDeadline(room, cfg)) {
		return PhaseBonus
	}
	return PhaseRoundEnd
}

// TimeRemaining is the countdown shown for the phase
func TimeRemaining(room *models.Room, phase Phase, now time.Time, cfg Config) time.Duration {
	var deadline time.Time
	switch phase {
	case PhaseActive:
		if room.RoundStartTime == nil {
			return 0
		}
		deadline = room.RoundStartTime.Add(cfg.RoundDuration)
	case PhaseBonus:
		deadline = BonusDeadline(room, cfg)
	case PhaseRoundEnd:
		if room.RoundWonAt == nil {
			return 0
		}
		deadline = room.RoundWonAt.Add(cfg.WinOverlay)
	default:
		return 0
	}
	return max(deadline.Sub(now), 0)
}

func buildSnapshot(room *models.Room, players []*models.Player, now time.Time, cfg Config, bonusUsed bool) *Snapshot {
	phase := DerivePhase(room, now, cfg, bonusUsed)
	return &Snapshot{
		Room: room.Clone(),
		Players: lo.Map(players, func(p *models.Player, _ int) *models.Player {
			return p.Clone()
		}),
		Phase:              phase,
		TimeRemainingMs:    TimeRemaining(room, phase, now, cfg).Milliseconds(),
		ShuffleVotesNeeded: ShuffleMajority(len(players)),
		ServerTime:         now,
	}
}
