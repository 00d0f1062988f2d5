package game_constants

import "time"

// Round timing
const (
	ROUND_DURATION        = 60 * time.Second
	WIN_OVERLAY           = 3 * time.Second
	TOUGH_BONUS_EXTENSION = 15 * time.Second
	BONUS_SAFETY_TIMEOUT  = 18 * time.Second
	// longest a room waits in the tutorial before round one starts anyway
	TUTORIAL_TIMEOUT = 2 * time.Minute
)

// Player lifecycle
const (
	WAITING_INACTIVITY = 60 * time.Second
	ACTIVE_INACTIVITY  = 90 * time.Second
	STALE_ROOM_AGE     = 5 * time.Minute
	SWEEP_INTERVAL     = 1 * time.Minute
)

// Room sizing
const (
	DEFAULT_MIN_PLAYERS       = 2
	DEFAULT_MAX_PLAYERS       = 8
	DEFAULT_PREFERRED_PLAYERS = 4
	ABSOLUTE_MAX_PLAYERS      = 12
)

const LETTERS_PER_ROUND = 5

// Dead rounds in a row before the letter set is regenerated
const MAX_FAILED_ROUNDS = 3

// Submissions a winner may record in one round (winning word + tough-letter bonus)
const MAX_SUBMISSIONS_PER_ROUND = 2

const (
	MIN_GRAND_WORD_LENGTH = 4
	MAX_WORD_LENGTH       = 32
)

// Category selection
const (
	CROSS_GAME_HISTORY_GAMES  = 5
	CATEGORY_LETTER_HISTORY   = 50
	MIN_CANDIDATES_AFTER_FAIL = 10
	MIN_BROAD_CANDIDATES      = 5
	BROAD_CATEGORY_BREADTH    = 6
	TOUGH_COMPATIBLE_BREADTH  = 5
	BROAD_ONLY_AFTER_FAILURES = 2
	TOP_CANDIDATES_MIN        = 5
	TOP_CANDIDATES_FRACTION   = 0.20
	DEFAULT_DIFFICULTY        = 5.0
	CATEGORY_LETTER_PENALTY   = 50.0
	MIN_ROUNDS_FOR_DIFFICULTY = 3
)

// Room status values
const (
	STATUS_WAITING  = "waiting"
	STATUS_TUTORIAL = "tutorial"
	STATUS_PLAYING  = "playing"
	STATUS_FINISHED = "finished"
)

// Room types
const (
	ROOM_PRIVATE = "private"
	ROOM_PUBLIC  = "public"
)
