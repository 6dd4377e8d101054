// Package sqlite provides the SQLite persistence backend for single-node
// deployments that want durability without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/persistence/sqlbase"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const dirPermissions = 0o755

// Persistence implements the persistence layer for SQLite.
type Persistence struct {
	db          *sql.DB
	logger      *slog.Logger
	nodeRepo    *sqlbase.NodeRepository
	leadRepo    *sqlbase.LeadRepository
	profileRepo *sqlbase.ProfileRepository
}

// NewPersistence opens (and creates if needed) the SQLite database at dsn
// and runs migrations. The parent directory is created when missing.
func NewPersistence(ctx context.Context, logger *slog.Logger, dsn string) (*Persistence, error) {
	if dsn == "" {
		return nil, errors.New("sqlite dsn not set")
	}

	if err := os.MkdirAll(filepath.Dir(dsn), dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
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

// isUniqueViolation reports whether err is a SQLite unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
