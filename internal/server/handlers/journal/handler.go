// Package journal exposes the undo/redo journal over HTTP.
package journal

import (
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/vcs"
)

type Handler struct {
	vcsSvc *vcs.Service

	logger *zap.Logger
}

func NewHandler(vcsSvc *vcs.Service, logger *zap.Logger) handler.Handler {
	return &Handler{
		vcsSvc: vcsSvc,

		logger: logger,
	}
}

// StepResponse reports one undo/redo attempt. Performed is false when the
// corresponding stack was empty; that is not an error.
type StepResponse struct {
	Performed   bool   `json:"performed"`
	Description string `json:"description,omitempty"`
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/history")

	r.Get("/", h.history)
	r.Post("/undo", h.undo)
	r.Post("/redo", h.redo)
}

func (h *Handler) history(c *fiber.Ctx) error {
	return c.JSON(h.vcsSvc.History())
}

func (h *Handler) undo(c *fiber.Ctx) error {
	description, performed := h.vcsSvc.Undo()
	return c.JSON(StepResponse{Performed: performed, Description: description})
}

func (h *Handler) redo(c *fiber.Ctx) error {
	description, performed := h.vcsSvc.Redo()
	return c.JSON(StepResponse{Performed: performed, Description: description})
}
