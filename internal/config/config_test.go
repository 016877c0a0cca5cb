package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.eduland.example")
	t.Setenv("SESSION_TOKEN", "token-123")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://api.eduland.example", cfg.APIBaseURL)
	assert.Equal(t, "token-123", cfg.SessionToken)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.AutosaveDebounce)
	assert.Equal(t, 30*time.Second, cfg.AutosaveInterval)
	assert.Equal(t, 2*time.Second, cfg.SavedStatusDelay)
	assert.Equal(t, 8, cfg.RosterConcurrency)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}

func TestNewOverridesDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.eduland.example")
	t.Setenv("SESSION_TOKEN_FILE", "/tmp/token")
	t.Setenv("AUTOSAVE_DEBOUNCE", "500ms")
	t.Setenv("ROSTER_CONCURRENCY", "2")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveDebounce)
	assert.Equal(t, 2, cfg.RosterConcurrency)
	assert.Empty(t, cfg.SessionToken)
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Setenv("SESSION_TOKEN", "token-123")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestNewRequiresSomeTokenSource(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.eduland.example")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TOKEN")
}

func TestNewRejectsZeroConcurrency(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.eduland.example")
	t.Setenv("SESSION_TOKEN", "token-123")
	t.Setenv("ROSTER_CONCURRENCY", "0")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTER_CONCURRENCY")
}
