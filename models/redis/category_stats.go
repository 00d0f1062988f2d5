package redis

// CategoryStats are the running counters of one mini category.
// Stored as a hash under "category:{id}:stats"
type CategoryStats struct {
	Rounds     int64 `json:"rounds" redis:"rounds"`           // rounds played with the category
	Accepted   int64 `json:"accepted" redis:"accepted"`       // accepted submissions
	Rejected   int64 `json:"rejected" redis:"rejected"`       // rejected submissions
	DeadRounds int64 `json:"dead_rounds" redis:"dead_rounds"` // rounds that timed out with no winner
}

// GameRecord is what a player keeps from a finished match, used for
// cross-game anti-repetition
type GameRecord struct {
	RoomID         string   `json:"room_id"`
	BaseCategory   string   `json:"base_category"`
	MiniCategories []string `json:"mini_categories"`
	FinishedAt     int64    `json:"finished_at"` // Unix timestamp
}
