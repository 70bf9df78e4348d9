package factory

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/services/timeout"
	redisstorage "github.com/mcoot/wordtiles/internal/storage/redis"
)

// Defaults for settings not given in the environment
const (
	DefaultDictionaryPaths = "en=data/words.txt"
	DefaultSweepInterval   = time.Minute
	DefaultPort            = 8080
)

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DictionaryPaths maps a language to its word list file
	DictionaryPaths map[string]string
	// TurnTimeout is how long a player has to act; zero uses the game default
	TurnTimeout time.Duration
	// Sweep configures the expired-turn sweeper
	Sweep timeout.Config
	// SweepInterval is how often the server runs the sweeper
	SweepInterval time.Duration
	// Port is the HTTP listen port
	Port int
}

// DefaultConfig returns an in-memory configuration
func DefaultConfig() Config {
	return Config{
		StorageType:     StorageTypeMemory,
		DictionaryPaths: map[string]string{"en": "data/words.txt"},
		TurnTimeout:     game.DefaultTurnTimeout,
		Sweep:           timeout.DefaultConfig(),
		SweepInterval:   DefaultSweepInterval,
		Port:            DefaultPort,
	}
}

// ConfigFromEnv builds a Config from the environment, after loading a .env file if one exists
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.StorageType = envOr("STORAGE_TYPE", StorageTypeMemory)

	if cfg.StorageType == StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return Config{}, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	paths, err := parseDictionaryPaths(envOr("DICTIONARY_PATHS", DefaultDictionaryPaths))
	if err != nil {
		return Config{}, err
	}
	cfg.DictionaryPaths = paths

	if cfg.TurnTimeout, err = envDuration("TURN_TIMEOUT", cfg.TurnTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = envDuration("SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return Config{}, err
	}
	if cfg.Sweep.Workers, err = envInt("SWEEP_WORKERS", cfg.Sweep.Workers); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseDictionaryPaths parses "en=words.txt,fr=mots.txt"
func parseDictionaryPaths(raw string) (map[string]string, error) {
	paths := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		language, path, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(language) == "" || strings.TrimSpace(path) == "" {
			return nil, errors.Newf("invalid DICTIONARY_PATHS entry %q: want language=path", entry)
		}
		paths[strings.TrimSpace(language)] = strings.TrimSpace(path)
	}
	return paths, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, errors.Newf("invalid %s %q: want a positive duration", key, v)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.Newf("invalid %s %q: want a positive integer", key, v)
	}
	return n, nil
}
