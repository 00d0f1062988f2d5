package config

import (
	"Wordrush/services/game"
	"Wordrush/utils"
	"os"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// ServerConfig is everything the server reads from the environment
type ServerConfig struct {
	Game game.Config

	Store           string
	MigratePostgres bool
	RedisURL        string

	OracleURL     string
	OracleTimeout time.Duration
	WordListPath  string

	RateLimitRPS       float64
	RateLimitBurst     int
	DifficultyCacheTTL time.Duration
	AnalyticsBuffer    int

	SessionKey string
	JWTSecret  string
	Production bool
	Verbose    bool
	Port       string
}

// LoadGameConfig reads the round timing and room sizing, falling back to
// the defaults for anything unset or malformed
func LoadGameConfig() game.Config {
	def := game.DefaultConfig()
	return game.Config{
		RoundDuration:       utils.GetEnvDuration("ROUND_DURATION", def.RoundDuration),
		WinOverlay:          utils.GetEnvDuration("WIN_OVERLAY", def.WinOverlay),
		ToughBonusExtension: utils.GetEnvDuration("TOUGH_BONUS_EXTENSION", def.ToughBonusExtension),
		BonusSafetyTimeout:  utils.GetEnvDuration("BONUS_SAFETY_TIMEOUT", def.BonusSafetyTimeout),
		TutorialTimeout:     utils.GetEnvDuration("TUTORIAL_TIMEOUT", def.TutorialTimeout),
		WaitingInactivity:   utils.GetEnvDuration("WAITING_INACTIVITY", def.WaitingInactivity),
		ActiveInactivity:    utils.GetEnvDuration("ACTIVE_INACTIVITY", def.ActiveInactivity),
		StaleRoomAge:        utils.GetEnvDuration("STALE_ROOM_AGE", def.StaleRoomAge),
		SweepInterval:       utils.GetEnvDuration("SWEEP_INTERVAL", def.SweepInterval),
		MinPlayers:          utils.GetEnvInt("MIN_PLAYERS", def.MinPlayers),
		MaxPlayers:          utils.GetEnvInt("MAX_PLAYERS", def.MaxPlayers),
		PreferredPlayers:    utils.GetEnvInt("PREFERRED_PLAYERS", def.PreferredPlayers),
	}
}

func LoadServerConfig() ServerConfig {
	store := os.Getenv("STORE")
	if store == "" {
		store = StorePostgres
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return ServerConfig{
		Game:               LoadGameConfig(),
		Store:              store,
		MigratePostgres:    utils.GetEnvBool("MIGRATE_POSTGRES", false),
		RedisURL:           os.Getenv("REDIS_URL"),
		OracleURL:          os.Getenv("ORACLE_URL"),
		OracleTimeout:      utils.GetEnvDuration("ORACLE_TIMEOUT", 3*time.Second),
		WordListPath:       os.Getenv("WORDLIST_PATH"),
		RateLimitRPS:       utils.GetEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     utils.GetEnvInt("RATE_LIMIT_BURST", 10),
		DifficultyCacheTTL: utils.GetEnvDuration("DIFFICULTY_CACHE_TTL", 5*time.Minute),
		AnalyticsBuffer:    utils.GetEnvInt("ANALYTICS_BUFFER", 1024),
		SessionKey:         os.Getenv("KEY"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Production:         utils.GetEnvBool("PROD", false),
		Verbose:            utils.GetEnvBool("VERBOSE", false),
		Port:               port,
	}
}
