package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/script"
)

// Placeholders builds script substitution contexts from the read-only lead
// and profile collections.
type Placeholders struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

// NewPlaceholders creates a placeholder-context service.
func NewPlaceholders(p persistence.Persistence, logger *slog.Logger) *Placeholders {
	return &Placeholders{persistence: p, logger: logger}
}

// ContextFor resolves a substitution context. Either id may be empty, in
// which case that side of the context stays blank and the parser's fallback
// chain applies.
func (s *Placeholders) ContextFor(ctx context.Context, leadID, profileID string) (script.Context, error) {
	var result script.Context

	if leadID != "" {
		lead, err := s.persistence.LeadRepository().GetByID(ctx, leadID)
		if err != nil {
			return result, fmt.Errorf("failed to load lead %s: %w", leadID, err)
		}

		result.LeadFirstName = lead.FirstName
		result.LeadFullName = lead.FullName
		result.BusinessName = lead.BusinessName
		result.LeadMagnetName = lead.LeadMagnetName
	}

	if profileID != "" {
		profile, err := s.persistence.ProfileRepository().GetByID(ctx, profileID)
		if err != nil {
			return result, fmt.Errorf("failed to load profile %s: %w", profileID, err)
		}

		result.RepFirstName = profile.FirstName
		result.RepFullName = profile.FullName
	}

	return result, nil
}
