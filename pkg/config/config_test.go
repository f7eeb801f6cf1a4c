package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/paytrack-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-prueba")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 480, cfg.JWT.Expiration, "la sesión dura 8 horas por defecto")
	assert.Equal(t, config.LoginIDGenerated, cfg.Auth.LoginIDMode)
	assert.Equal(t, "admin", cfg.Bootstrap.LoginID)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto-de-prueba")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("LOGIN_ID_MODE", "supplied")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.SQLitePath)
	assert.Equal(t, config.LoginIDSupplied, cfg.Auth.LoginIDMode)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err, "un secreto vacío no debe permitir arrancar")
}

func TestValidate_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{
		JWT:       config.JWTConfig{Secret: "s", Expiration: 60},
		Store:     config.StoreConfig{Driver: "mongo"},
		Auth:      config.AuthConfig{LoginIDMode: config.LoginIDGenerated},
		Bootstrap: config.BootstrapConfig{LoginID: "admin", Password: "admin123"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Store.Driver = config.DriverSQLite
	assert.NoError(t, cfg.Validate())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pt", Password: "p@ss/word", DBName: "paytrack", SSLMode: "disable"}
	assert.Equal(t, "postgres://pt:p%40ss%2Fword@db:5432/paytrack?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
