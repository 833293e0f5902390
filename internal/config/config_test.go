package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresServerURL(t *testing.T) {
	t.Setenv("SCORPIUI_SERVER_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCORPIUI_SERVER_URL", "ws://localhost:8000/ws")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, " | ", cfg.TitleSeparator)
	assert.Equal(t, 10*time.Second, cfg.HandshakeTimeout)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SCORPIUI_SERVER_URL", "wss://ui.example.com/ws")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_NAME", "counter")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCORPIUI_TITLE_SEPARATOR", " - ")
	t.Setenv("SCORPIUI_HANDSHAKE_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wss://ui.example.com/ws", cfg.ServerURL)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "counter", cfg.AppName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, " - ", cfg.TitleSeparator)
	assert.Equal(t, 3*time.Second, cfg.HandshakeTimeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("SCORPIUI_SERVER_URL", "ws://localhost:8000/ws")
	t.Setenv("SCORPIUI_HANDSHAKE_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
