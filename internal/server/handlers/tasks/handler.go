package tasks

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/tasks"
)

type CreateRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type Handler struct {
	tasksSvc *tasks.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(tasksSvc *tasks.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		tasksSvc: tasksSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/tasks")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Post("/", h.post)
	r.Delete("/:id", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.tasksSvc.List())
}

func (h *Handler) post(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	task, err := h.tasksSvc.Add(req.Title, req.Description)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.tasksSvc.Remove(c.Params("id")); err != nil {
		return fmt.Errorf("failed to remove task: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, tasks.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, tasks.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
