package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "SESSION_BACKEND", "DB_NAME", "READ_TIMEOUT", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, "gojobot.db", cfg.DBName)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SESSION_BACKEND", "SQLite")
	t.Setenv("READ_TIMEOUT", "15s")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port, "bare port numbers get a colon prefix")
	assert.Equal(t, "123:abc", cfg.Token)
	assert.Equal(t, BackendSQLite, cfg.SessionBackend, "backend names are lowercased")
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestGetDatabasePath(t *testing.T) {
	cfg := &Config{DBPath: "./data/", DBName: "gojobot.db"}
	assert.Equal(t, "./data/gojobot.db", cfg.GetDatabasePath())
}

func TestParseAdminIDs(t *testing.T) {
	cfg := &Config{AdminIDsRaw: "123, abc, 456,,  789 "}

	admins := cfg.ParseAdminIDs(zap.NewNop())

	assert.Len(t, admins, 3)
	assert.Contains(t, admins, int64(123))
	assert.Contains(t, admins, int64(456))
	assert.Contains(t, admins, int64(789))
}

func TestParseAdminIDsEmpty(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.ParseAdminIDs(zap.NewNop()))
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{SessionBackend: BackendMemory}
	assert.Error(t, cfg.ValidateConfig(), "token is required")

	cfg.Token = "123:abc"
	assert.NoError(t, cfg.ValidateConfig())

	cfg.SessionBackend = "postgres"
	assert.Error(t, cfg.ValidateConfig(), "unknown backend is rejected")

	cfg.SessionBackend = BackendSQLite
	assert.Error(t, cfg.ValidateConfig(), "sqlite needs a database name")
	cfg.DBName = "gojobot.db"
	assert.NoError(t, cfg.ValidateConfig())

	cfg.SessionBackend = BackendRedis
	assert.Error(t, cfg.ValidateConfig(), "redis needs an address")
	cfg.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.ValidateConfig())
}
