// Package cmd provides shared construction helpers for the command binaries.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/persistence/file"
	"github.com/atechlabs/scriptflow/pkg/persistence/postgresql"
	"github.com/atechlabs/scriptflow/pkg/persistence/sqlite"
)

// NewPersistence selects a backend by the database URL scheme: postgres for
// postgres:// or postgresql://, file for file://, and sqlite for anything
// else (the URL is treated as a database file path).
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parseProvider(databaseURL) {
	case "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to initialize postgresql persistence: %w", err))
		}

		return p
	case "file":
		return file.NewPersistence(databaseURL)
	default:
		p, err := sqlite.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to initialize sqlite persistence: %w", err))
		}

		return p
	}
}

func parseProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "sqlite"
	}

	switch scheme {
	case "postgres", "postgresql":
		return "postgresql"
	case "file":
		return "file"
	default:
		return "sqlite"
	}
}
