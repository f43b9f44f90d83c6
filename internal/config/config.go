// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the client's settings, read from environment variables:
//   - WOLFGAME_SERVER_URL (default "http://localhost:8000")
//   - WOLFGAME_WS_URL (derived from the server URL when unset)
//   - WOLFGAME_POLL_INTERVAL_SEC (default 5)
//   - WOLFGAME_LOG_LEVEL (default "info")
type Config struct {
	ServerURL    string
	WSURL        string
	PollInterval time.Duration
	LogLevel     logrus.Level
}

// Load reads the environment. The cmd entrypoint blank-imports
// godotenv/autoload so a local .env file is already applied by the time this
// runs.
func Load() Config {
	serverURL := strings.TrimSuffix(getEnv("WOLFGAME_SERVER_URL", "http://localhost:8000"), "/")

	wsURL := strings.TrimSuffix(os.Getenv("WOLFGAME_WS_URL"), "/")
	if wsURL == "" {
		wsURL = deriveWSURL(serverURL)
	}

	level, err := logrus.ParseLevel(getEnv("WOLFGAME_LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}

	return Config{
		ServerURL:    serverURL,
		WSURL:        wsURL,
		PollInterval: time.Duration(getEnvInt("WOLFGAME_POLL_INTERVAL_SEC", 5)) * time.Second,
		LogLevel:     level,
	}
}

// GameSocketURL returns the realtime channel endpoint for one session.
func (c Config) GameSocketURL(sessionID string) string {
	return fmt.Sprintf("%s/ws/game/%s/", c.WSURL, sessionID)
}

// deriveWSURL swaps the scheme of the HTTP base URL: http -> ws, https -> wss.
func deriveWSURL(serverURL string) string {
	switch {
	case strings.HasPrefix(serverURL, "https://"):
		return "wss://" + strings.TrimPrefix(serverURL, "https://")
	case strings.HasPrefix(serverURL, "http://"):
		return "ws://" + strings.TrimPrefix(serverURL, "http://")
	default:
		return "ws://" + serverURL
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
