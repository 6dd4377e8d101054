package navigation

import (
	"testing"

	"github.com/atechlabs/scriptflow/pkg/graph"
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupGraph() *graph.Graph {
	start := testutil.CreateTestNode(
		testutil.WithNodeID("WEBSITE_SIGNUP_START"),
		testutil.WithStage(models.StageSource),
		testutil.WithWorkflow("WEBSITE_SIGNUP"),
		testutil.WithOutcomes("CONTACT_METHOD_CHOICE", "", ""),
	)
	choice := testutil.CreateTestNode(
		testutil.WithNodeID("CONTACT_METHOD_CHOICE"),
		testutil.WithParent("WEBSITE_SIGNUP_START"),
		testutil.WithWorkflow("WEBSITE_SIGNUP"),
		testutil.WithOutcomes("INTRO_STAGE_CALL", "", ""),
	)
	call := testutil.CreateTestNode(
		testutil.WithNodeID("INTRO_STAGE_CALL"),
		testutil.WithParent("CONTACT_METHOD_CHOICE"),
		testutil.WithStage(models.StageAppointment),
		testutil.WithWorkflow("WEBSITE_SIGNUP"),
	)

	return graph.New([]*models.WorkflowNode{start, choice, call})
}

func TestEngine_WebsiteSignupWalk(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()

	assert.Equal(t, PhaseAtRoot, engine.Phase(state))

	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.CurrentNodeID)
	assert.Empty(t, state.History)

	require.True(t, engine.Navigate(state, "CONTACT_METHOD_CHOICE"))
	require.Len(t, state.History, 1)
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.History[0].NodeID)

	require.True(t, engine.Navigate(state, "INTRO_STAGE_CALL"))
	require.Len(t, state.History, 2)
	assert.Equal(t, "CONTACT_METHOD_CHOICE", state.History[1].NodeID)

	require.True(t, engine.Back(state))
	assert.Equal(t, "CONTACT_METHOD_CHOICE", state.CurrentNodeID)
	assert.Len(t, state.History, 1)

	require.True(t, engine.Back(state))
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.CurrentNodeID)
	assert.Empty(t, state.History)
}

func TestEngine_SelectRootUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()

	assert.False(t, engine.SelectRoot(state, "NOT_A_NODE"))
	assert.True(t, state.AtRoot())
}

func TestEngine_NavigateUnknownTargetIsNoOp(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))

	assert.False(t, engine.Navigate(state, "NOT_A_NODE"))
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.CurrentNodeID)
	assert.Empty(t, state.History)
}

func TestEngine_BackOnEmptyHistoryIsNoOp(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))

	assert.False(t, engine.Back(state))
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.CurrentNodeID)
}

func TestEngine_HistorySnapshotsSurviveNodeEdits(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))
	require.True(t, engine.Navigate(state, "CONTACT_METHOD_CHOICE"))

	// History holds a copy, not a reference into the graph.
	live, ok := engine.Graph().GetByID("WEBSITE_SIGNUP_START")
	require.True(t, ok)
	original := state.History[0].ScenarioTitle
	live.ScenarioTitle = "Edited"

	assert.Equal(t, original, state.History[0].ScenarioTitle)
}

func TestEngine_Reset(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	state.SelectedWorkflow = "WEBSITE_SIGNUP"
	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))
	require.True(t, engine.Navigate(state, "CONTACT_METHOD_CHOICE"))

	engine.Reset(state)

	assert.True(t, state.AtRoot())
	assert.Empty(t, state.History)
	assert.Empty(t, state.SelectedWorkflow)
	assert.Equal(t, PhaseAtRoot, engine.Phase(state))
}

func TestEngine_JumpToBreadcrumb(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	require.True(t, engine.SelectRoot(state, "WEBSITE_SIGNUP_START"))
	require.True(t, engine.Navigate(state, "CONTACT_METHOD_CHOICE"))
	require.True(t, engine.Navigate(state, "INTRO_STAGE_CALL"))

	require.True(t, engine.JumpToBreadcrumb(state, "WEBSITE_SIGNUP_START"))
	assert.Equal(t, "WEBSITE_SIGNUP_START", state.CurrentNodeID)
	assert.Empty(t, state.History)

	assert.False(t, engine.JumpToBreadcrumb(state, "INTRO_STAGE_CALL"))
}

func TestEngine_PhaseTerminal(t *testing.T) {
	t.Parallel()

	engine := NewEngine(signupGraph())
	state := models.NewNavigationState()
	require.True(t, engine.SelectRoot(state, "INTRO_STAGE_CALL"))

	assert.Equal(t, PhaseTerminal, engine.Phase(state))
}
