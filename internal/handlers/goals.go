package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reet/goalforge-api/internal/goals"
	"github.com/reet/goalforge-api/internal/middleware"
	"github.com/reet/goalforge-api/internal/models"
)

// GoalHandler exposes the goal lifecycle over HTTP. Every endpoint is
// scoped to the authenticated owner.
type GoalHandler struct {
	svc *goals.Service
}

func NewGoalHandler(svc *goals.Service) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// renderGoalError translates a business error into its status and a
// stable error code; anything else is an internal failure.
func renderGoalError(c *fiber.Ctx, err error) error {
	if bizErr, ok := goals.AsError(err); ok {
		return c.Status(bizErr.HTTPStatus()).JSON(fiber.Map{
			"error":   string(bizErr.Code),
			"message": bizErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "INTERNAL_ERROR",
		"message": "Unexpected server error",
	})
}

// parseGoalID parses the :id path parameter. When it is malformed the
// 400 response has already been written and the returned id is Nil.
func parseGoalID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}
	return id, nil
}

// ownedGoal loads a goal and checks it belongs to the caller. A goal
// owned by someone else reads the same as a missing one. On failure the
// response has already been written and the returned goal is nil.
func (h *GoalHandler) ownedGoal(c *fiber.Ctx, id uuid.UUID) (*models.Goal, error) {
	goal, err := h.svc.Get(id)
	if err != nil {
		return nil, renderGoalError(c, err)
	}
	userID := middleware.GetUserID(c)
	if goal.OwnerID == nil || *goal.OwnerID != userID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   string(goals.CodeNotFound),
			"message": "Goal not found",
		})
	}
	return goal, nil
}

func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goal := models.Goal{
		OwnerID:         &userID,
		Name:            req.Name,
		ProgressType:    models.ProgressType(req.ProgressType),
		EstimatedEffort: req.EstimatedEffort,
	}

	created, err := h.svc.Create(&goal)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	id, resp := parseGoalID(c)
	if id == uuid.Nil {
		return resp
	}
	goal, resp := h.ownedGoal(c, id)
	if goal == nil {
		return resp
	}
	return c.JSON(goal)
}

func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	list, err := h.svc.List(userID)
	if err != nil {
		return renderGoalError(c, err)
	}
	if list == nil {
		list = []models.Goal{}
	}
	return c.JSON(list)
}

func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	id, resp := parseGoalID(c)
	if id == uuid.Nil {
		return resp
	}
	if goal, resp := h.ownedGoal(c, id); goal == nil {
		return resp
	}
	if err := h.svc.Delete(id); err != nil {
		return renderGoalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *GoalHandler) DeleteAllGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := h.svc.DeleteAll(userID); err != nil {
		return renderGoalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *GoalHandler) StartGoal(c *fiber.Ctx) error {
	return h.transition(c, h.svc.Start)
}

func (h *GoalHandler) PauseGoal(c *fiber.Ctx) error {
	return h.transition(c, h.svc.Pause)
}

func (h *GoalHandler) ResumeGoal(c *fiber.Ctx) error {
	return h.transition(c, h.svc.Resume)
}

func (h *GoalHandler) CompleteGoal(c *fiber.Ctx) error {
	return h.transition(c, h.svc.Complete)
}

func (h *GoalHandler) transition(c *fiber.Ctx, op func(uuid.UUID) (*models.Goal, error)) error {
	id, resp := parseGoalID(c)
	if id == uuid.Nil {
		return resp
	}
	if owned, resp := h.ownedGoal(c, id); owned == nil {
		return resp
	}
	goal, err := op(id)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.JSON(goal)
}

func (h *GoalHandler) AddProgress(c *fiber.Ctx) error {
	id, resp := parseGoalID(c)
	if id == uuid.Nil {
		return resp
	}
	if owned, resp := h.ownedGoal(c, id); owned == nil {
		return resp
	}

	var req models.AddProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goal, err := h.svc.AddProgress(id, req.Date, req.Effort)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.JSON(goal)
}

func (h *GoalHandler) UpdateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	id, resp := parseGoalID(c)
	if id == uuid.Nil {
		return resp
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goal, err := h.svc.Update(id, req, userID)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.JSON(goal)
}

func (h *GoalHandler) ReorderGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	list, err := h.svc.Reorder(userID, req.GoalIDs)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.JSON(list)
}

func (h *GoalHandler) ExportGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	list, err := h.svc.Export(userID)
	if err != nil {
		return renderGoalError(c, err)
	}
	if list == nil {
		list = []models.Goal{}
	}
	return c.JSON(list)
}

func (h *GoalHandler) ImportGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	list, err := h.svc.Import(userID, req.Mode, req.Goals)
	if err != nil {
		return renderGoalError(c, err)
	}
	return c.JSON(list)
}
