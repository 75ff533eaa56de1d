package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("reads exported variables", func(t *testing.T) {
		clearEnv(t)
		os.Args = []string{"testbin"}
		t.Setenv(EnvHTTPAddr, ":9999")
		t.Setenv(EnvDatabaseURL, "postgres://u:p@h/db")
		t.Setenv(EnvJWTSecretKey, "s3cr3t")
		t.Setenv(EnvJWTExpires, "900")
		t.Setenv(EnvBcryptLogRounds, "4")
		t.Setenv(EnvQueryTimeout, "750ms")
		t.Setenv(EnvCORSOrigins, "http://a.example,http://b.example")
		t.Setenv(EnvLogLevel, "debug")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://u:p@h/db", cfg.DatabaseDSN)
		assert.Equal(t, "s3cr3t", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.Equal(t, 750*time.Millisecond, cfg.QueryTimeout)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("loads dotenv file from -env", func(t *testing.T) {
		clearEnv(t)
		// godotenv does not override variables that are already set,
		// even to an empty string.
		require.NoError(t, os.Unsetenv(EnvJWTSecretKey))
		t.Cleanup(func() { _ = os.Unsetenv(EnvJWTSecretKey) })

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET_KEY=from-file\n"), 0o600))
		os.Args = []string{"testbin", "-env", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "from-file", cfg.SecretKey)
	})

	t.Run("missing dotenv file from -env panics", func(t *testing.T) {
		clearEnv(t)
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "nope.env")}

		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})

	t.Run("bad bcrypt rounds panics", func(t *testing.T) {
		clearEnv(t)
		os.Args = []string{"testbin"}
		t.Setenv(EnvBcryptLogRounds, "lots")

		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

func Test_mustParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, mustParseDuration("X", "90"))
	assert.Equal(t, 2*time.Hour, mustParseDuration("X", "2h"))
	assert.Panics(t, func() { mustParseDuration("X", "soon") })
}
