package sqlbase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
)

// LeadRepository implements persistence.LeadRepository over database/sql.
// Conversation history is stored as a JSON column; leads are read-only
// placeholder-context inputs, so only reads are exposed.
type LeadRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLeadRepository creates a lead repository for one SQL backend.
func NewLeadRepository(db *sql.DB, logger *slog.Logger) *LeadRepository {
	return &LeadRepository{db: db, logger: logger}
}

const leadColumns = `id, first_name, full_name, business_name, lead_magnet_name,
	email, phone, status, history, notes, created_at, updated_at`

func (r *LeadRepository) List(ctx context.Context) ([]*models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+leadColumns+" FROM leads ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	leads := make([]*models.Lead, 0)

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}

		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+leadColumns+" FROM leads WHERE id = $1", id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrLeadNotFound
	}

	if err != nil {
		return nil, err
	}

	return lead, nil
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var lead models.Lead

	var history []byte

	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.FullName, &lead.BusinessName,
		&lead.LeadMagnetName, &lead.Email, &lead.Phone, &lead.Status,
		&history, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan lead row: %w", err)
	}

	if len(history) > 0 {
		if err := json.Unmarshal(history, &lead.History); err != nil {
			return nil, fmt.Errorf("failed to decode lead history: %w", err)
		}
	}

	return &lead, nil
}
