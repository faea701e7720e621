package config

import (
	"testing"

	"atm/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ATM_ENV", "ATM_LOG_LEVEL", "ATM_MODE", "ATM_HTTP_ADDR", "ATM_SEED_FILE", "ATM_JOURNAL_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Environment: logging.EnvironmentProduction,
		Mode:        ModeConsole,
		HTTPAddr:    ":8080",
		JournalFile: "atm_log.txt",
	}, cfg)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ATM_ENV", "local")
	t.Setenv("ATM_LOG_LEVEL", "warn")
	t.Setenv("ATM_MODE", "HTTP")
	t.Setenv("ATM_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("ATM_SEED_FILE", "/etc/atm/seed.json")
	t.Setenv("ATM_JOURNAL_FILE", "/var/log/atm.txt")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeHTTP, cfg.Mode)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "/etc/atm/seed.json", cfg.SeedFile)
	assert.Equal(t, "/var/log/atm.txt", cfg.JournalFile)
	assert.Equal(t, logging.Config{Environment: logging.EnvironmentLocal, Level: "warn"}, cfg.Logging())
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("ATM_MODE", "grpc")
	_, err := Load()
	assert.Error(t, err)
}
