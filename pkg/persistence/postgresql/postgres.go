// Package postgresql provides the PostgreSQL persistence backend.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/persistence/sqlbase"
	"github.com/lib/pq"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db          *sql.DB
	logger      *slog.Logger
	nodeRepo    *sqlbase.NodeRepository
	leadRepo    *sqlbase.LeadRepository
	profileRepo *sqlbase.ProfileRepository
}

// NewPersistence connects to PostgreSQL and runs migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())
	if err := migrationManager.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:          database,
		logger:      logger,
		nodeRepo:    sqlbase.NewNodeRepository(database, logger, isUniqueViolation),
		leadRepo:    sqlbase.NewLeadRepository(database, logger),
		profileRepo: sqlbase.NewProfileRepository(database, logger),
	}, nil
}

func (p *Persistence) NodeRepository() persistence.NodeRepository {
	return p.nodeRepo
}

func (p *Persistence) LeadRepository() persistence.LeadRepository {
	return p.leadRepo
}

func (p *Persistence) ProfileRepository() persistence.ProfileRepository {
	return p.profileRepo
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return false
}
