package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T, prefix string) {
	t.Helper()
	t.Setenv(prefix+"DB_HOST", "127.0.0.1")
	t.Setenv(prefix+"DB_USER", "pgstay")
	t.Setenv(prefix+"DB_PASSWORD", "secret")
	t.Setenv(prefix+"DB_NAME", "pgstay_test")
	t.Setenv(prefix+"DB_PORT", "3306")
	t.Setenv("DEFAULT_LANDLORD_PASSWORD", "landlord123")
}

func TestLoadConfigLocal(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	setRequiredEnv(t, "LOCAL_")

	cfg := LoadConfig()
	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, "auto", cfg.DBMigrationMode)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, "landlord@pg.in", cfg.DefaultLandlordUsername)
	assert.Equal(t, "landlord123", cfg.DefaultLandlordPassword)
}

func TestLoadConfigServerPrefix(t *testing.T) {
	t.Setenv("ENV_TYPE", "SERVER")
	setRequiredEnv(t, "SERVER_")
	t.Setenv("SERVER_SERVER_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := LoadConfig()
	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.RedisEnabled)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	setRequiredEnv(t, "LOCAL_")
	t.Setenv("LOCAL_DB_PASSWORD", "")

	assert.Panics(t, func() { LoadConfig() })
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBUser:     "pgstay",
		DBPassword: "secret",
		DBName:     "pgstay",
		DBPort:     "3306",
	}
	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "pgstay:secret@tcp(db.internal:3306)/pgstay")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache.internal", RedisPort: "6380"}
	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}
