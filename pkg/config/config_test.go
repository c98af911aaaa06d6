package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-cms/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("HTTP_PORT", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "commodities-cms", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 800*time.Millisecond, cfg.Session.LoginLatency)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
	assert.True(t, cfg.Audit.Enabled)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_ADDRESS", "cache:6379")
	t.Setenv("LOGIN_LATENCY_MS", "0")
	t.Setenv("AUDIT_ENABLED", "false")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	assert.Zero(t, cfg.Session.LoginLatency)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoad_StoreDesconocido(t *testing.T) {
	t.Setenv("SESSION_STORE", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PostgresSinDB(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word/1", DBName: "cms", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword%2F1@db:5432/cms?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://u@h/d"
	assert.Equal(t, "postgres://u@h/d", c.ConnectionString())
}
