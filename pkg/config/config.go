package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	env "github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        // Address of the task HTTP server
	AgentAddr       string        // Address of the arithmetic gRPC agent
	DatabaseDSN     string        // SQLite DSN for the task store
	LogLevel        slog.Level    // Minimum log level
	LogFormat       string        // "text" or "json"
	ShutdownTimeout time.Duration // Grace period for in-flight requests on shutdown

	TimeAdditionMS       int // Simulated duration of an addition on the agent, in milliseconds
	TimeSubtractionMS    int // Simulated duration of a subtraction on the agent, in milliseconds
	TimeMultiplicationMS int // Simulated duration of a multiplication on the agent, in milliseconds
	TimeDivisionMS       int // Simulated duration of a division on the agent, in milliseconds
}

func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		AgentAddr:       "localhost:8081",
		DatabaseDSN:     "tasks.db",
		LogLevel:        slog.LevelInfo,
		LogFormat:       "text",
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadConfig reads the given .env files (if they exist) into the process
// environment and builds a Config from it. Variables already set in the
// environment win over the files.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := env.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	cfg.HTTPAddr = stringVar("HTTP_ADDR", cfg.HTTPAddr)
	cfg.AgentAddr = stringVar("AGENT_ADDR", cfg.AgentAddr)
	cfg.DatabaseDSN = stringVar("DATABASE_DSN", cfg.DatabaseDSN)

	cfg.LogFormat = strings.ToLower(stringVar("LOG_FORMAT", cfg.LogFormat))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}
	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", s)
		}
		cfg.ShutdownTimeout = d
	}

	var err error
	if cfg.TimeAdditionMS, err = msVar("TIME_ADDITION_MS"); err != nil {
		return nil, err
	}
	if cfg.TimeSubtractionMS, err = msVar("TIME_SUBTRACTION_MS"); err != nil {
		return nil, err
	}
	if cfg.TimeMultiplicationMS, err = msVar("TIME_MULTIPLICATIONS_MS"); err != nil {
		return nil, err
	}
	if cfg.TimeDivisionMS, err = msVar("TIME_DIVISIONS_MS"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stringVar(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func msVar(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
