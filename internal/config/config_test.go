package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3600, cfg.Redis.TTLSeconds)
}

func TestLoadAssistantMissingFile(t *testing.T) {
	cfg, err := LoadAssistant(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAssistant(), cfg)
}

func TestLoadAssistantOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
assistant:
  typing_delay_ms: 10
  search_delay_ms: 20
  coupon_probability: 0.5
  wallet_address: "0xabc"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadAssistant(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TypingDelayMS)
	assert.Equal(t, 20, cfg.SearchDelayMS)
	assert.Equal(t, 0.5, cfg.CouponProbability)
	assert.Equal(t, "0xabc", cfg.WalletAddress)
	// Unset fields keep defaults.
	assert.Equal(t, 2000, cfg.ConfirmDelayMS)
	assert.Equal(t, 3000, cfg.ImageAnalysisDelayMS)
}

func TestLoadAssistantBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := LoadAssistant(path)
	assert.Error(t, err)
}
