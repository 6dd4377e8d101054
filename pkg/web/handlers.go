// Package web provides HTTP handlers and REST API endpoints for the workflow
// graph editor and the walkthrough sessions.
package web

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atechlabs/scriptflow/pkg/layout"
	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/atechlabs/scriptflow/pkg/navigation"
	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/script"
	"github.com/atechlabs/scriptflow/pkg/services"
	"github.com/atechlabs/scriptflow/pkg/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	editor       *services.Editor
	placeholders *services.Placeholders
	sessions     session.Store
	validator    *validator.Validate
}

func NewAPIHandlers(
	editor *services.Editor,
	placeholders *services.Placeholders,
	sessions session.Store,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		editor:       editor,
		placeholders: placeholders,
		sessions:     sessions,
		validator:    validator,
	}
}

func (h *APIHandlers) GetNodes(c fiber.Ctx) error {
	opts := persistence.ListNodesOptions{
		WorkflowName: c.Query("workflow_name"),
	}

	if stageStr := c.Query("stage"); stageStr != "" {
		stage := models.Stage(stageStr)
		if !models.ValidStage(stage) {
			return badRequest(c, "Unknown stage: "+stageStr)
		}

		opts.Stage = &stage
	}

	if parentID := c.Query("parent_id"); parentID != "" {
		opts.ParentID = &parentID
	}

	nodes, err := h.editor.ListNodes(c.Context(), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"nodes":       nodes,
		"total_count": len(nodes),
	})
}

func (h *APIHandlers) GetNode(c fiber.Ctx) error {
	nodeID := c.Params("nodeId")
	if nodeID == "" {
		return badRequest(c, "Node ID is required")
	}

	node, err := h.editor.FetchByNodeID(c.Context(), nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(node)
}

func (h *APIHandlers) CreateNode(c fiber.Ctx) error {
	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.editor.Create(c.Context(), req.ToModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	nodeID := c.Params("nodeId")
	if nodeID == "" {
		return badRequest(c, "Node ID is required")
	}

	var update services.NodeUpdate
	if err := c.Bind().JSON(&update); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	updated, err := h.editor.Update(c.Context(), nodeID, update)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	nodeID := c.Params("nodeId")
	if nodeID == "" {
		return badRequest(c, "Node ID is required")
	}

	if err := h.editor.Delete(c.Context(), nodeID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ImportNodes(c fiber.Ctx) error {
	body := c.Body()

	if err := services.ValidateImportDocument(body); err != nil {
		return handleServiceError(c, err)
	}

	nodes, err := services.DecodeImportDocument(body)
	if err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	imported, err := h.editor.BulkImport(c.Context(), nodes)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"imported": len(imported),
		"nodes":    imported,
	})
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	g, err := h.editor.Graph(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	groups := g.GroupByWorkflow()
	summaries := make([]WorkflowSummary, 0, len(groups))

	for _, name := range g.WorkflowNames() {
		summaries = append(summaries, WorkflowSummary{
			Name:      name,
			NodeCount: len(groups[name]),
		})
	}

	return c.JSON(fiber.Map{"workflows": summaries})
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return badRequest(c, "Workflow name is required")
	}

	deleted, err := h.editor.DeleteWorkflow(c.Context(), name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}

func (h *APIHandlers) GetLayout(c fiber.Ctx) error {
	opts := persistence.ListNodesOptions{WorkflowName: c.Query("workflow_name")}

	nodes, err := h.editor.ListNodes(c.Context(), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(layout.Project(nodes))
}

func (h *APIHandlers) CreateSession(c fiber.Ctx) error {
	state := models.NewNavigationState()

	sessionID, err := h.sessions.Create(c.Context(), state)
	if err != nil {
		return internalError(c, err)
	}

	view, err := h.sessionView(c, sessionID, state)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *APIHandlers) GetSession(c fiber.Ctx) error {
	sessionID, state, err := h.loadSession(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	view, err := h.sessionView(c, sessionID, state)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(view)
}

func (h *APIHandlers) DeleteSession(c fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return badRequest(c, "Session ID is required")
	}

	if err := h.sessions.Delete(c.Context(), sessionID); err != nil {
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) SelectRoot(c fiber.Ctx) error {
	var req SelectRootRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return h.withSession(c, func(engine *navigation.Engine, state *models.NavigationState) error {
		state.SelectedWorkflow = req.WorkflowName

		if !engine.SelectRoot(state, req.NodeID) {
			return persistence.NewNodeError("SelectRoot", req.NodeID, persistence.ErrNodeNotFound)
		}

		return nil
	})
}

func (h *APIHandlers) Navigate(c fiber.Ctx) error {
	var req NavigateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return h.withSession(c, func(engine *navigation.Engine, state *models.NavigationState) error {
		if !engine.Navigate(state, req.TargetNodeID) {
			return persistence.NewNodeError("Navigate", req.TargetNodeID, persistence.ErrNodeNotFound)
		}

		return nil
	})
}

func (h *APIHandlers) Back(c fiber.Ctx) error {
	return h.withSession(c, func(engine *navigation.Engine, state *models.NavigationState) error {
		// An empty history is a no-op, not an error.
		engine.Back(state)

		return nil
	})
}

func (h *APIHandlers) Reset(c fiber.Ctx) error {
	return h.withSession(c, func(engine *navigation.Engine, state *models.NavigationState) error {
		engine.Reset(state)

		return nil
	})
}

func (h *APIHandlers) Jump(c fiber.Ctx) error {
	var req JumpRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return h.withSession(c, func(engine *navigation.Engine, state *models.NavigationState) error {
		if !engine.JumpToBreadcrumb(state, req.NodeID) {
			return persistence.NewNodeError("JumpToBreadcrumb", req.NodeID, persistence.ErrNodeNotFound)
		}

		return nil
	})
}

func (h *APIHandlers) GetSessionScript(c fiber.Ctx) error {
	_, state, err := h.loadSession(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	if state.AtRoot() {
		return badRequest(c, "Session has not selected a starting node")
	}

	g, err := h.editor.Graph(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	node, ok := g.GetByID(state.CurrentNodeID)
	if !ok {
		return notFound(c, "Current node no longer exists: "+state.CurrentNodeID)
	}

	sctx, err := h.placeholders.ContextFor(c.Context(), c.Query("lead"), c.Query("profile"))
	if err != nil {
		return handleServiceError(c, err)
	}

	mode := script.ModeHeuristic
	if strings.EqualFold(c.Query("mode"), "strict") {
		mode = script.ModeStrict
	}

	displayed, replies := script.ExtractInlineReplies(node.ScriptContent)

	response := ScriptResponse{
		NodeID:        node.NodeID,
		ScriptName:    node.ScriptName,
		ScriptSection: node.ScriptSection,
		Steps:         buildSteps(displayed, sctx, mode),
		FullScript:    script.FullScript(script.ReplacePlaceholders(displayed, sctx), mode),
	}

	if replies != nil {
		steps := navigation.ResolveNextSteps(g, node, state.SelectedWorkflow)
		response.InlineReplies = steps.InlineReplies
	}

	return c.JSON(response)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.editor.HealthCheck(c.Context())

	status := "unhealthy"
	message := "ScriptFlow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "ScriptFlow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// loadSession resolves the :id parameter to its stored navigation state.
func (h *APIHandlers) loadSession(c fiber.Ctx) (string, *models.NavigationState, error) {
	sessionID := c.Params("id")
	if sessionID == "" {
		return "", nil, session.ErrSessionNotFound
	}

	state, err := h.sessions.Get(c.Context(), sessionID)
	if err != nil {
		return "", nil, err
	}

	return sessionID, state, nil
}

// withSession runs one state transition against a fresh graph snapshot,
// persists the mutated state, and responds with the updated session view.
func (h *APIHandlers) withSession(c fiber.Ctx, transition func(*navigation.Engine, *models.NavigationState) error) error {
	sessionID, state, err := h.loadSession(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	g, err := h.editor.Graph(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	engine := navigation.NewEngine(g)

	if err := transition(engine, state); err != nil {
		return handleServiceError(c, err)
	}

	if err := h.sessions.Save(c.Context(), sessionID, state); err != nil {
		return handleServiceError(c, err)
	}

	view, err := h.buildSessionView(engine, sessionID, state)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(view)
}

func (h *APIHandlers) sessionView(c fiber.Ctx, sessionID string, state *models.NavigationState) (SessionResponse, error) {
	g, err := h.editor.Graph(c.Context())
	if err != nil {
		return SessionResponse{}, err
	}

	return h.buildSessionView(navigation.NewEngine(g), sessionID, state)
}

func (h *APIHandlers) buildSessionView(engine *navigation.Engine, sessionID string, state *models.NavigationState) (SessionResponse, error) {
	view := SessionResponse{
		SessionID: sessionID,
		Phase:     engine.Phase(state),
		State:     state,
	}

	if state.AtRoot() {
		view.Roots = rootCandidates(engine, state.SelectedWorkflow)

		return view, nil
	}

	current := engine.Current(state)
	if current == nil {
		return view, nil
	}

	steps := navigation.ResolveNextSteps(engine.Graph(), current, state.SelectedWorkflow)
	view.Current = current
	view.NextSteps = &steps

	return view, nil
}

// rootCandidates lists the nodes a walkthrough can start from: nodes with no
// parent grouping, ordered like siblings.
func rootCandidates(engine *navigation.Engine, workflowFilter string) []*models.WorkflowNode {
	roots := make([]*models.WorkflowNode, 0)

	for _, node := range engine.Graph().Nodes() {
		if node.ParentID != "" {
			continue
		}

		if workflowFilter != "" && node.WorkflowName != workflowFilter {
			continue
		}

		roots = append(roots, node)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].DisplayOrder < roots[j].DisplayOrder
	})

	return roots
}

func buildSteps(content string, sctx script.Context, mode script.ClassifierMode) []ScriptStep {
	values := sctx.ResolvedValues()
	segments := script.StepSegments(content, mode)
	steps := make([]ScriptStep, 0, len(segments))

	for _, segment := range segments {
		substituted := script.ReplacePlaceholders(segment, sctx)
		lines := make([]ScriptLine, 0)

		for _, line := range strings.Split(substituted, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}

			if script.IsInstruction(line, mode) {
				lines = append(lines, ScriptLine{
					Instruction: true,
					Spans:       script.HighlightLine(script.InstructionText(line), values),
				})

				continue
			}

			lines = append(lines, ScriptLine{Spans: script.HighlightLine(trimmed, values)})
		}

		steps = append(steps, ScriptStep{Lines: lines})
	}

	return steps
}
