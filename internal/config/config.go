// Package config loads process-wide configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"
)

// Config holds the application's configuration values, read once at
// process start.
type Config struct {
	Port         string
	GeminiAPIKey string
	Model        string
	LogLevel     slog.Level
}

// Load parses configuration from the given command-line arguments with
// environment variable fallbacks. A .env file in the working directory is
// loaded first, if present. The Gemini API key is required: without it the
// model client cannot be initialized and startup fails.
func Load(args []string) (Config, error) {
	_ = gotenv.Load()

	env := func(fallback string, keys ...string) string {
		for _, key := range keys {
			if val := os.Getenv(key); val != "" {
				return val
			}
		}
		return fallback
	}

	fs := pflag.NewFlagSet("ai-code-reviewer", pflag.ContinueOnError)
	port := fs.String("port", env("8080", "SERVER_PORT"), "HTTP listen port")
	apiKey := fs.String("gemini-api-key", env("", "GEMINI_API_KEY"), "Gemini API key")
	model := fs.String("model", env("gemini-2.0-flash", "GEMINI_MODEL"), "Gemini model name")
	logLevel := fs.String("log-level", env("info", "LOG_LEVEL"), "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(*apiKey) == "" {
		return Config{}, errors.New("gemini api key is required (set GEMINI_API_KEY or --gemini-api-key)")
	}

	return Config{
		Port:         *port,
		GeminiAPIKey: *apiKey,
		Model:        *model,
		LogLevel:     parseLogLevel(*logLevel),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
