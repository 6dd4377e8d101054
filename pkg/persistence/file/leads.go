package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
)

// LeadRepository stores one JSON file per lead under <root>/leads. The
// walkthrough only reads leads; seeding writes the files directly.
type LeadRepository struct {
	root string
}

// NewLeadRepository creates a new file-backed lead repository.
func NewLeadRepository(root string) *LeadRepository {
	return &LeadRepository{root: root}
}

func (r *LeadRepository) dir() string {
	return path.Join(r.root, "leads")
}

func (r *LeadRepository) List(_ context.Context) ([]*models.Lead, error) {
	entries, err := fs.Glob(os.DirFS(r.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list lead files: %w", err)
	}

	leads := make([]*models.Lead, 0, len(entries))

	for _, entry := range entries {
		data, err := os.ReadFile(path.Join(r.dir(), entry))
		if err != nil {
			return nil, fmt.Errorf("failed to read lead file %s: %w", entry, err)
		}

		var lead models.Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return nil, fmt.Errorf("failed to decode lead file %s: %w", entry, err)
		}

		leads = append(leads, &lead)
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.Before(leads[j].CreatedAt)
	})

	return leads, nil
}

func (r *LeadRepository) GetByID(_ context.Context, id string) (*models.Lead, error) {
	data, err := os.ReadFile(path.Join(r.dir(), id+".json"))
	if os.IsNotExist(err) {
		return nil, persistence.ErrLeadNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read lead %s: %w", id, err)
	}

	var lead models.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, fmt.Errorf("failed to decode lead %s: %w", id, err)
	}

	return &lead, nil
}

// Put writes a lead file; used by seeding and tests.
func (r *LeadRepository) Put(lead *models.Lead) error {
	if err := os.MkdirAll(r.dir(), dirPermissions); err != nil {
		return fmt.Errorf("failed to create leads directory: %w", err)
	}

	data, err := json.MarshalIndent(lead, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lead %s: %w", lead.ID, err)
	}

	if err := os.WriteFile(path.Join(r.dir(), lead.ID+".json"), data, filePermissions); err != nil {
		return fmt.Errorf("failed to write lead %s: %w", lead.ID, err)
	}

	return nil
}
