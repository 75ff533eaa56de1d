package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names. DATABASE_URL, JWT_SECRET_KEY,
// BCRYPT_LOG_ROUNDS and CORS_ORIGINS match the deployment scripts of the
// previous Flask service so existing .env files keep working.
const (
	EnvHTTPAddr        = "HTTP_ADDR"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvJWTSecretKey    = "JWT_SECRET_KEY"
	EnvJWTExpires      = "JWT_ACCESS_TOKEN_EXPIRES"
	EnvBcryptLogRounds = "BCRYPT_LOG_ROUNDS"
	EnvQueryTimeout    = "QUERY_TIMEOUT"
	EnvCORSOrigins     = "CORS_ORIGINS"
	EnvLogLevel        = "LOG_LEVEL"
)

// parseEnv loads a dotenv file (the -env flag, or ./.env when present) and
// then overlays every non-empty variable above onto config. Variables that
// are already exported win over the file. Malformed values panic.
func parseEnv(config *Config) {
	loadDotEnv(flagx.EnvFileFlags())

	setString(&config.EndpointAddrHTTP, os.Getenv(EnvHTTPAddr))
	setString(&config.DatabaseDSN, os.Getenv(EnvDatabaseURL))
	setString(&config.SecretKey, os.Getenv(EnvJWTSecretKey))
	setString(&config.LogLevel, os.Getenv(EnvLogLevel))

	if v := os.Getenv(EnvJWTExpires); v != "" {
		config.AccessTokenValidityDuration = mustParseDuration(EnvJWTExpires, v)
	}
	if v := os.Getenv(EnvQueryTimeout); v != "" {
		config.QueryTimeout = mustParseDuration(EnvQueryTimeout, v)
	}
	if v := os.Getenv(EnvBcryptLogRounds); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvBcryptLogRounds, err))
		}
		config.BcryptCost = cost
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		config.CORSOrigins = splitList(v)
	}
}

func loadDotEnv(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}
}

// mustParseDuration accepts Go durations ("15m") or a bare number of seconds.
func mustParseDuration(name, v string) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: invalid duration %q", name, v))
	}
	return time.Duration(secs) * time.Second
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
