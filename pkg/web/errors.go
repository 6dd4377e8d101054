package web

import (
	"errors"
	"fmt"

	"github.com/atechlabs/scriptflow/pkg/persistence"
	"github.com/atechlabs/scriptflow/pkg/services"
	"github.com/atechlabs/scriptflow/pkg/session"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func conflict(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(409).
		WithInstance(c.Path()).
		WithType("conflict").
		WithDetail(detail)

	return c.Status(fiber.StatusConflict).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	if cascade, ok := services.IsCascadeError(err); ok {
		// The cascade is not transactional: report how far it got so the
		// caller can retry the remainder.
		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("cascade_aborted").
			WithDetail(fmt.Sprintf(
				"workflow %q delete aborted: %d nodes deleted, %d remaining",
				cascade.WorkflowName, cascade.Deleted, cascade.Remaining,
			))

		return c.Status(fiber.StatusInternalServerError).JSON(problem)
	}

	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case services.IsConflictError(err):
		return conflict(c, err.Error())

	case persistence.IsNodeNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("node_not_found").
			WithDetail("node not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, services.ErrWorkflowNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("workflow_not_found").
			WithDetail("workflow not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case persistence.IsLeadNotFound(err):
		return notFound(c, "lead not found")

	case persistence.IsProfileNotFound(err):
		return notFound(c, "profile not found")

	case errors.Is(err, session.ErrSessionNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("session_not_found").
			WithDetail("session not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	default:
		// Log unexpected errors but don't expose details
		return internalError(c, err)
	}
}
