package game

import (
	"errors"
	"net/http"
)

// Rejection is a typed refusal of a request. It never leaves a partial
// write behind: rejections are returned before anything is saved
type Rejection struct {
	Code   string `json:"code"`
	Reason string `json:"error"`
	Status int    `json:"-"`
}

func (r *Rejection) Error() string {
	return r.Reason
}

// Is matches rejections by code, so errors.Is works with a custom reason
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Code == r.Code
}

// With returns the same rejection with another reason
func (r *Rejection) With(reason string) *Rejection {
	return &Rejection{Code: r.Code, Reason: reason, Status: r.Status}
}

var (
	ErrInvalidInput     = &Rejection{Code: "invalid_input", Reason: "Invalid request", Status: http.StatusBadRequest}
	ErrRoomNotFound     = &Rejection{Code: "room_not_found", Reason: "Room not found", Status: http.StatusNotFound}
	ErrPlayerNotFound   = &Rejection{Code: "player_not_in_room", Reason: "You are not in this room", Status: http.StatusForbidden}
	ErrNotHost          = &Rejection{Code: "not_host", Reason: "Only the host can do that", Status: http.StatusForbidden}
	ErrWrongStatus      = &Rejection{Code: "wrong_status", Reason: "Not allowed in the current room status", Status: http.StatusConflict}
	ErrNotEnoughPlayers = &Rejection{Code: "not_enough_players", Reason: "Not enough players to start", Status: http.StatusConflict}
	ErrRoomFull         = &Rejection{Code: "room_full", Reason: "Room is full", Status: http.StatusConflict}
)

// AsRejection extracts a rejection from err
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// Codes of submissions that were evaluated but not accepted
const (
	LossRoundWon         = "round_already_won"
	LossRoundChanged     = "round_changed"
	LossWrongLetter      = "wrong_letter"
	LossWordUsed         = "word_used"
	LossInvalidWord      = "invalid_word"
	LossBonusUsed        = "bonus_used"
	LossNoBonus          = "no_bonus"
	LossBonusClosed      = "bonus_closed"
	LossNoBaseCategory   = "no_base_category"
	LossNoLetters        = "no_letters"
	LossTooShort         = "too_short"
	LossLettersMissing   = "letters_not_collected"
	LossMatchAlreadyDone = "match_finished"
)
