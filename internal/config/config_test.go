package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/assessment-engine/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3, cfg.AIMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.AIAttemptBaseDelay)
	assert.Equal(t, 10, cfg.AIMinResponseBytes)
	assert.Equal(t, int64(5), cfg.AssessmentCoinCost)
	assert.Equal(t, "intermediate", cfg.AssessmentDifficulty)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("AI_MAX_ATTEMPTS", "5")
	t.Setenv("ASSESSMENT_COIN_COST", "10")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 5, cfg.AIMaxAttempts)
	assert.Equal(t, int64(10), cfg.AssessmentCoinCost)
}

func TestGetAIBackoffConfig_TestEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := config.Load()
	require.NoError(t, err)
	maxElapsed, initial, maxInt, mult := cfg.GetAIBackoffConfig()
	assert.Equal(t, 2*time.Second, maxElapsed)
	assert.Equal(t, 50*time.Millisecond, initial)
	assert.Equal(t, 500*time.Millisecond, maxInt)
	assert.Equal(t, 2.0, mult)
}
