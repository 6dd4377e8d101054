package cmd

import (
	"fmt"
	"log/slog"

	"github.com/atechlabs/scriptflow/pkg/session"
)

// NewSessionStore returns the Redis-backed store when a Redis URL is
// configured, falling back to the in-process store otherwise.
func NewSessionStore(logger *slog.Logger, redisURL string) session.Store {
	if redisURL == "" {
		logger.Info("Using in-memory session store")

		return session.NewMemoryStore()
	}

	store, err := session.NewRedisStore(redisURL)
	if err != nil {
		panic(fmt.Errorf("failed to initialize redis session store: %w", err))
	}

	logger.Info("Using redis session store")

	return store
}
