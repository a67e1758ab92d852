package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.Equal(t, 30, cfg.ErrorLogRetentionDays)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SALT_ROUND", "12")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 12, cfg.SaltRound)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("SALT_ROUND", "many")
	t.Setenv("MINIO_USE_SSL", "maybe")

	assert.Equal(t, 10, getEnvInt("SALT_ROUND", 10))
	assert.False(t, getEnvBool("MINIO_USE_SSL", false))
}
