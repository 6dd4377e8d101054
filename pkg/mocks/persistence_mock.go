// Package mocks provides testify mock implementations of the persistence
// interfaces for unit testing.
package mocks

import (
	"context"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockNodeRepository is a mock implementation of persistence.NodeRepository interface.
type MockNodeRepository struct {
	mock.Mock
}

func (m *MockNodeRepository) List(ctx context.Context, opts persistence.ListNodesOptions) ([]*models.WorkflowNode, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.WorkflowNode), args.Error(1)
}

func (m *MockNodeRepository) GetByNodeID(ctx context.Context, nodeID string) (*models.WorkflowNode, error) {
	args := m.Called(ctx, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.WorkflowNode), args.Error(1)
}

func (m *MockNodeRepository) Create(ctx context.Context, node *models.WorkflowNode) error {
	args := m.Called(ctx, node)

	return args.Error(0)
}

func (m *MockNodeRepository) Update(ctx context.Context, node *models.WorkflowNode) error {
	args := m.Called(ctx, node)

	return args.Error(0)
}

func (m *MockNodeRepository) Delete(ctx context.Context, nodeID string) error {
	args := m.Called(ctx, nodeID)

	return args.Error(0)
}

func (m *MockNodeRepository) BulkCreate(ctx context.Context, nodes []*models.WorkflowNode) error {
	args := m.Called(ctx, nodes)

	return args.Error(0)
}

// MockLeadRepository is a mock implementation of persistence.LeadRepository interface.
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*models.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Lead), args.Error(1)
}

// MockProfileRepository is a mock implementation of persistence.ProfileRepository interface.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock

	Nodes    *MockNodeRepository
	Leads    *MockLeadRepository
	Profiles *MockProfileRepository
}

// NewMockPersistence wires a persistence mock with mock repositories.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		Nodes:    &MockNodeRepository{},
		Leads:    &MockLeadRepository{},
		Profiles: &MockProfileRepository{},
	}
}

func (m *MockPersistence) NodeRepository() persistence.NodeRepository {
	return m.Nodes
}

func (m *MockPersistence) LeadRepository() persistence.LeadRepository {
	return m.Leads
}

func (m *MockPersistence) ProfileRepository() persistence.ProfileRepository {
	return m.Profiles
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
