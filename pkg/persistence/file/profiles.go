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

// ProfileRepository stores one JSON file per operator profile under
// <root>/profiles.
type ProfileRepository struct {
	root string
}

// NewProfileRepository creates a new file-backed profile repository.
func NewProfileRepository(root string) *ProfileRepository {
	return &ProfileRepository{root: root}
}

func (r *ProfileRepository) dir() string {
	return path.Join(r.root, "profiles")
}

func (r *ProfileRepository) List(_ context.Context) ([]*models.Profile, error) {
	entries, err := fs.Glob(os.DirFS(r.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}

	profiles := make([]*models.Profile, 0, len(entries))

	for _, entry := range entries {
		data, err := os.ReadFile(path.Join(r.dir(), entry))
		if err != nil {
			return nil, fmt.Errorf("failed to read profile file %s: %w", entry, err)
		}

		var profile models.Profile
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile file %s: %w", entry, err)
		}

		profiles = append(profiles, &profile)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})

	return profiles, nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (*models.Profile, error) {
	data, err := os.ReadFile(path.Join(r.dir(), id+".json"))
	if os.IsNotExist(err) {
		return nil, persistence.ErrProfileNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}

	return &profile, nil
}

// Put writes a profile file; used by seeding and tests.
func (r *ProfileRepository) Put(profile *models.Profile) error {
	if err := os.MkdirAll(r.dir(), dirPermissions); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", profile.ID, err)
	}

	if err := os.WriteFile(path.Join(r.dir(), profile.ID+".json"), data, filePermissions); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", profile.ID, err)
	}

	return nil
}
