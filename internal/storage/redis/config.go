package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// FinishedGameTTL is how long a finished game and its moves are retained.
	// Zero keeps them forever.
	FinishedGameTTL time.Duration

	// CommitRetries bounds WATCH retries when a key changes between read and write
	CommitRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		FinishedGameTTL: 30 * 24 * time.Hour,
		CommitRetries:   3,
	}
}
