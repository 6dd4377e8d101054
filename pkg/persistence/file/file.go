// Package file provides a file-system persistence backend: one JSON document
// per record under nodes/, leads/ and profiles/. Useful for local
// development and tests; the SQL backends are the deployment targets.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/atechlabs/scriptflow/pkg/persistence"
)

// Persistence implements the persistence interface using the file system.
type Persistence struct {
	root        string
	nodeRepo    *NodeRepository
	leadRepo    *LeadRepository
	profileRepo *ProfileRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:        cleanRoot,
		nodeRepo:    NewNodeRepository(cleanRoot),
		leadRepo:    NewLeadRepository(cleanRoot),
		profileRepo: NewProfileRepository(cleanRoot),
	}
}

// NodeRepository returns the node repository implementation.
func (p *Persistence) NodeRepository() persistence.NodeRepository {
	return p.nodeRepo
}

// LeadRepository returns the lead repository implementation.
func (p *Persistence) LeadRepository() persistence.LeadRepository {
	return p.leadRepo
}

// ProfileRepository returns the profile repository implementation.
func (p *Persistence) ProfileRepository() persistence.ProfileRepository {
	return p.profileRepo
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. Nothing to do for files.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
