package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "contable-pro", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_LogLevelDesdeEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestDSN_EscapaCaracteresEspeciales(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word/1",
		DBName:   "contable_pro",
		SSLMode:  "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1", "la contraseña va URL-encoded")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgresql://u:p@supabase:5432/db?sslmode=require",
		Host:        "ignorado",
	}
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}
