package config_test

import (
	"Wordrush/config"
	"Wordrush/services/game"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadGameConfigDefaults(t *testing.T) {
	assert.Equal(t, game.DefaultConfig(), config.LoadGameConfig())
}

func TestLoadGameConfigOverrides(t *testing.T) {
	t.Setenv("ROUND_DURATION", "45s")
	t.Setenv("MAX_PLAYERS", "6")
	t.Setenv("WIN_OVERLAY", "soon")
	t.Setenv("TUTORIAL_TIMEOUT", "90s")

	cfg := config.LoadGameConfig()
	assert.Equal(t, 45*time.Second, cfg.RoundDuration)
	assert.Equal(t, 6, cfg.MaxPlayers)
	assert.Equal(t, 90*time.Second, cfg.TutorialTimeout)
	assert.Equal(t, game.DefaultConfig().WinOverlay, cfg.WinOverlay, "malformed values keep the default")
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("STORE", "")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := config.LoadServerConfig()
	assert.Equal(t, config.StorePostgres, cfg.Store)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}
