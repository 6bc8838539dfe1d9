package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, values map[string]any) string {
	t.Helper()
	out, err := yaml.Marshal(values)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))
	return path
}

func TestDecode(t *testing.T) {
	t.Run("yaml file", func(t *testing.T) {
		path := writeConfigFile(t, map[string]any{
			"server":   map[string]any{"port": 8080, "env": "staging"},
			"database": map[string]any{"driver": "postgres", "dsn": "postgres://bookstore@localhost/bookstore"},
			"jwt":      map[string]any{"key": "file-secret", "issuer": "issuer", "audience": "audience", "ttl": "30m"},
		})
		cfg, err := Decode(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "staging", cfg.Server.Env)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "file-secret", cfg.JWT.Key)
		assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("environment only", func(t *testing.T) {
		t.Setenv("JWTKEY", "env-secret")
		t.Setenv("PORT", "9090")
		cfg, err := Decode(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "env-secret", cfg.JWT.Key)
		assert.Equal(t, "memory", cfg.Database.Driver)
		assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
		assert.Equal(t, "admin@bookstore.com", cfg.Admin.Email)
	})

	t.Run("missing jwt key", func(t *testing.T) {
		t.Setenv("JWTKEY", "")
		_, err := Decode("")
		assert.ErrorIs(t, err, ErrMissingJWTKey)
	})
}
