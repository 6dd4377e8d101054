package services

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/atechlabs/scriptflow/pkg/mocks"
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/persistence/file"
	"github.com/atechlabs/scriptflow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()

	return NewEditor(file.NewPersistence(t.TempDir()), slog.Default())
}

func TestEditor_Create(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	node := testutil.CreateTestNode(testutil.WithNodeID("CREATE_ME"))
	node.ID = ""

	created, err := editor.Create(t.Context(), node)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	fetched, err := editor.FetchByNodeID(t.Context(), "CREATE_ME")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestEditor_Create_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	node := testutil.CreateTestNode(testutil.WithNodeID("INVALID"))
	node.ScenarioTitle = ""

	_, err := editor.Create(t.Context(), node)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Validation failures leave no partial write behind.
	_, err = editor.FetchByNodeID(t.Context(), "INVALID")
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestEditor_Create_UnknownStage(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	node := testutil.CreateTestNode(testutil.WithNodeID("BAD_STAGE"))
	node.Stage = "Not A Stage"

	_, err := editor.Create(t.Context(), node)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestEditor_Create_DuplicateNodeID(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.Create(t.Context(), testutil.CreateTestNode(testutil.WithNodeID("TAKEN")))
	require.NoError(t, err)

	_, err = editor.Create(t.Context(), testutil.CreateTestNode(testutil.WithNodeID("TAKEN")))
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestEditor_Create_NilNode(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.Create(t.Context(), nil)
	assert.ErrorIs(t, err, ErrNodeNil)
}

func TestEditor_Update_PartialMerge(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	created, err := editor.Create(t.Context(), testutil.CreateTestNode(
		testutil.WithNodeID("EDIT_ME"),
		testutil.WithScenario("Before", "original description"),
	))
	require.NoError(t, err)

	title := "After"
	order := 7

	updated, err := editor.Update(t.Context(), "EDIT_ME", NodeUpdate{
		ScenarioTitle: &title,
		DisplayOrder:  &order,
	})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.ScenarioTitle)
	assert.Equal(t, 7, updated.DisplayOrder)
	// Untouched fields keep their stored values.
	assert.Equal(t, "original description", updated.ScenarioDescription)
	assert.Equal(t, created.ID, updated.ID)
}

func TestEditor_Update_UnknownNode(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	title := "whatever"

	_, err := editor.Update(t.Context(), "MISSING", NodeUpdate{ScenarioTitle: &title})
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestEditor_Delete_LeavesDanglingEdges(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.Create(t.Context(), testutil.CreateTestNode(
		testutil.WithNodeID("POINTER"),
		testutil.WithOutcomes("VICTIM", "", ""),
	))
	require.NoError(t, err)

	_, err = editor.Create(t.Context(), testutil.CreateTestNode(testutil.WithNodeID("VICTIM")))
	require.NoError(t, err)

	require.NoError(t, editor.Delete(t.Context(), "VICTIM"))

	// The pointing node keeps its now-dangling edge.
	pointer, err := editor.FetchByNodeID(t.Context(), "POINTER")
	require.NoError(t, err)
	assert.Equal(t, "VICTIM", pointer.OnYesNextNode)
}

func TestEditor_DeleteWorkflow(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	for _, nodeID := range []string{"WF_A", "WF_B", "WF_C"} {
		_, err := editor.Create(t.Context(), testutil.CreateTestNode(
			testutil.WithNodeID(nodeID),
			testutil.WithWorkflow("DOOMED"),
		))
		require.NoError(t, err)
	}

	_, err := editor.Create(t.Context(), testutil.CreateTestNode(
		testutil.WithNodeID("SURVIVOR"),
		testutil.WithWorkflow("OTHER"),
	))
	require.NoError(t, err)

	deleted, err := editor.DeleteWorkflow(t.Context(), "DOOMED")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	_, err = editor.FetchByNodeID(t.Context(), "SURVIVOR")
	assert.NoError(t, err)
}

func TestEditor_DeleteWorkflow_Unknown(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.DeleteWorkflow(t.Context(), "NO_SUCH_WORKFLOW")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestEditor_DeleteWorkflow_PartialFailure(t *testing.T) {
	t.Parallel()

	nodes := make([]*models.WorkflowNode, 0, 5)
	for _, nodeID := range []string{"N1", "N2", "N3", "N4", "N5"} {
		nodes = append(nodes, testutil.CreateTestNode(
			testutil.WithNodeID(nodeID),
			testutil.WithWorkflow("FLAKY"),
		))
	}

	mockPersistence := mocks.NewMockPersistence()
	mockPersistence.Nodes.On("List", mock.Anything, persistence.ListNodesOptions{WorkflowName: "FLAKY"}).
		Return(nodes, nil)
	mockPersistence.Nodes.On("Delete", mock.Anything, "N1").Return(nil)
	mockPersistence.Nodes.On("Delete", mock.Anything, "N2").Return(nil)
	mockPersistence.Nodes.On("Delete", mock.Anything, "N3").Return(errors.New("disk full"))

	editor := NewEditor(mockPersistence, slog.Default())

	deleted, err := editor.DeleteWorkflow(t.Context(), "FLAKY")
	require.Error(t, err)
	assert.Equal(t, 2, deleted)

	var cascade *CascadeError
	require.ErrorAs(t, err, &cascade)
	assert.Equal(t, "FLAKY", cascade.WorkflowName)
	assert.Equal(t, 2, cascade.Deleted)
	assert.Equal(t, 3, cascade.Remaining)

	// The sequence stops at the failure: N4 and N5 are never attempted.
	mockPersistence.Nodes.AssertNotCalled(t, "Delete", mock.Anything, "N4")
	mockPersistence.Nodes.AssertNotCalled(t, "Delete", mock.Anything, "N5")
}

func TestEditor_BulkImport(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	batch := []*models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithNodeID("IMP_A")),
		testutil.CreateTestNode(testutil.WithNodeID("IMP_B")),
	}

	imported, err := editor.BulkImport(t.Context(), batch)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	for _, node := range imported {
		assert.NotEmpty(t, node.ID)
		assert.False(t, node.CreatedAt.IsZero())
	}
}

func TestEditor_BulkImport_Empty(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.BulkImport(t.Context(), nil)
	assert.ErrorIs(t, err, ErrImportEmpty)
}

func TestEditor_BulkImport_IntraBatchDuplicate(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	batch := []*models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithNodeID("SAME")),
		testutil.CreateTestNode(testutil.WithNodeID("SAME")),
	}

	_, err := editor.BulkImport(t.Context(), batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImportDuplicate)

	// Nothing persisted.
	nodes, err := editor.ListNodes(t.Context(), persistence.ListNodesOptions{})
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestEditor_BulkImport_StoreConflictIsAllOrNothing(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.Create(t.Context(), testutil.CreateTestNode(testutil.WithNodeID("TAKEN")))
	require.NoError(t, err)

	batch := []*models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithNodeID("FRESH")),
		testutil.CreateTestNode(testutil.WithNodeID("TAKEN")),
	}

	_, err = editor.BulkImport(t.Context(), batch)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))

	// The fresh node must not land either.
	_, err = editor.FetchByNodeID(t.Context(), "FRESH")
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestEditor_ListNodes_Filters(t *testing.T) {
	t.Parallel()

	editor := newTestEditor(t)

	_, err := editor.Create(t.Context(), testutil.CreateTestNode(
		testutil.WithNodeID("F1"),
		testutil.WithWorkflow("ALPHA"),
		testutil.WithStage(models.StageSource),
	))
	require.NoError(t, err)

	_, err = editor.Create(t.Context(), testutil.CreateTestNode(
		testutil.WithNodeID("F2"),
		testutil.WithWorkflow("BETA"),
		testutil.WithStage(models.StageClose),
	))
	require.NoError(t, err)

	byWorkflow, err := editor.ListNodes(t.Context(), persistence.ListNodesOptions{WorkflowName: "ALPHA"})
	require.NoError(t, err)
	require.Len(t, byWorkflow, 1)
	assert.Equal(t, "F1", byWorkflow[0].NodeID)

	stage := models.StageClose
	byStage, err := editor.ListNodes(t.Context(), persistence.ListNodesOptions{Stage: &stage})
	require.NoError(t, err)
	require.Len(t, byStage, 1)
	assert.Equal(t, "F2", byStage[0].NodeID)
}
