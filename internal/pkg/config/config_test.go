//go:build unit

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GATEWAY_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("GATEWAY_USERNAME", "user")
	t.Setenv("GATEWAY_PASSWORD", "pass")
	t.Setenv("GATEWAY_CLIENT_ID", "client")
	t.Setenv("GATEWAY_CLIENT_SECRET", "client-secret")
	t.Setenv("GATEWAY_GSTIN", "29AAACB1234C1Z5")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
		assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, []string{"1"}, cfg.Gateway.SuccessCodes)
		assert.Equal(t, 19800, cfg.Log.TimeZoneOffset)
	})

	t.Run("success codes list", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GATEWAY_SUCCESS_CODES", "1,200")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, []string{"1", "200"}, cfg.Gateway.SuccessCodes)
	})

	t.Run("error: postgres without database", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STORE_DRIVER", StoreDriverPostgres)

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_USER and DB_NAME")
	})

	t.Run("error: unknown driver", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STORE_DRIVER", "redis")

		_, err := LoadConfig()

		require.Error(t, err)
	})

	t.Run("error: missing gateway credentials", func(t *testing.T) {
		setRequiredEnv(t)
		require.NoError(t, os.Unsetenv("GATEWAY_PASSWORD"))

		_, err := LoadConfig()

		require.Error(t, err)
	})
}

func TestBuildMigrateURL(t *testing.T) {
	cfg := DBConfig{User: "gst", Password: "p@ss", Host: "db", Port: "5432", DBName: "gst", SSLMode: "disable"}
	assert.Equal(t, "pgx5://gst:p%40ss@db:5432/gst?sslmode=disable", cfg.BuildMigrateURL())
}
