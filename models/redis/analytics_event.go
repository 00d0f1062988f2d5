package redis

type EventType string

const (
	EventWordAccepted  EventType = "word_accepted"
	EventWordRejected  EventType = "word_rejected"
	EventRoundStarted  EventType = "round_started"
	EventDeadRound     EventType = "dead_round"
	EventMatchFinished EventType = "match_finished"
)

// AnalyticsEvent is one fire-and-forget record pushed to the analytics queue
type AnalyticsEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	RoomID      string    `json:"room_id"`
	PlayerID    string    `json:"player_id,omitempty"`
	RoundNumber int       `json:"round_number"`
	CategoryID  string    `json:"category_id,omitempty"`
	Category    string    `json:"category,omitempty"`
	Word        string    `json:"word,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Bonus       bool      `json:"bonus,omitempty"`
	Grand       bool      `json:"grand,omitempty"`
	Timestamp   int64     `json:"timestamp"` // Unix milliseconds

	// Rejection judged the word itself, so it counts toward the
	// category difficulty. Lost races and reused words do not
	JudgedByOracle bool `json:"judged_by_oracle,omitempty"`
}
