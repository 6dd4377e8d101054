package sqlbase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
)

// ProfileRepository implements persistence.ProfileRepository over database/sql.
type ProfileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProfileRepository creates a profile repository for one SQL backend.
func NewProfileRepository(db *sql.DB, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

const profileColumns = "id, first_name, full_name, created_at, updated_at"

func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	profiles := make([]*models.Profile, 0)

	for rows.Next() {
		var profile models.Profile

		err := rows.Scan(&profile.ID, &profile.FirstName, &profile.FullName,
			&profile.CreatedAt, &profile.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}

		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile

	err := r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1", id).
		Scan(&profile.ID, &profile.FirstName, &profile.FullName,
			&profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrProfileNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	return &profile, nil
}
