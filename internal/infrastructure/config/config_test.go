package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "procurement", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "procurement", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, "procurement", cfg.JWT.Issuer)
	assert.NotEmpty(t, cfg.JWT.Secret)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PROC_APP_PORT", "9090")
	t.Setenv("PROC_DATABASE_HOST", "db.internal")
	t.Setenv("PROC_LOG_LEVEL", "debug")
	t.Setenv("PROC_JWT_TOKEN_EXPIRATION", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.JWT.TokenExpiration)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("PROC_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("PROC_APP_ENV", "production")
	t.Setenv("PROC_JWT_SECRET", "a-very-long-production-signing-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "a-very-long-production-signing-secret", cfg.JWT.Secret)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "s3cret",
		DBName:   "procurement",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=s3cret dbname=procurement sslmode=disable",
		d.DSN())
}
