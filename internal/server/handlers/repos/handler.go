package repos

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/access"
	"github.com/forgesim/forgesim/internal/graph"
	"github.com/forgesim/forgesim/internal/vcs"
)

type Handler struct {
	vcsSvc *vcs.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(vcsSvc *vcs.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		vcsSvc: vcsSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/repositories")

	r.Use(h.errorsHandler)

	r.Get("/", h.list)
	r.Post("/", h.post)
	r.Get("/:name", h.get)
	r.Put("/:name", h.put)
	r.Delete("/:name", h.delete)

	r.Get("/:name/files", h.listFiles)
	r.Post("/:name/files", h.createFile)
	r.Patch("/:name/files", h.editFile)
	r.Delete("/:name/files", h.deleteFile)

	r.Get("/:name/branches", h.listBranches)
	r.Post("/:name/branches", h.createBranch)
	r.Put("/:name/branches/switch", h.switchBranch)
	r.Post("/:name/branches/merge", h.merge)
	r.Delete("/:name/branches/:branch", h.deleteBranch)

	r.Get("/:name/commits", h.listCommits)
	r.Post("/:name/commits", h.postCommit)

	r.Get("/:name/graph", h.graph)
}

func (h *Handler) list(c *fiber.Ctx) error {
	// The demo user toggle: non-owners only see public repositories.
	isOwner := c.QueryBool("owner", true)

	visible := access.Filter(h.vcsSvc.List(), isOwner)
	responses := lo.Map(visible, func(repo vcs.Repository, _ int) RepositoryResponse {
		return newRepositoryResponse(repo)
	})
	return c.JSON(responses)
}

func (h *Handler) post(c *fiber.Ctx) error {
	var req CreateRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	repo, err := h.vcsSvc.CreateRepository(req.Name, req.Description, req.IsPrivate)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newRepositoryResponse(repo))
}

func (h *Handler) get(c *fiber.Ctx) error {
	repo, err := h.vcsSvc.Get(c.Params("name"))
	if err != nil {
		return fmt.Errorf("failed to get repository: %w", err)
	}
	return c.JSON(newRepositoryResponse(repo))
}

func (h *Handler) put(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	repo, err := h.vcsSvc.UpdateRepository(c.Params("name"), req.Name, req.Description)
	if err != nil {
		return fmt.Errorf("failed to update repository: %w", err)
	}
	return c.JSON(newRepositoryResponse(repo))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.vcsSvc.DeleteRepository(c.Params("name")); err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listFiles(c *fiber.Ctx) error {
	repo, err := h.vcsSvc.Get(c.Params("name"))
	if err != nil {
		return fmt.Errorf("failed to get repository: %w", err)
	}
	return c.JSON(repo.CurrentFiles())
}

func (h *Handler) createFile(c *fiber.Ctx) error {
	var req CreateFileRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	file, err := h.vcsSvc.CreateFile(c.Params("name"), req.Path, req.Name, req.Content, req.CommitMessage)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

func (h *Handler) editFile(c *fiber.Ctx) error {
	var req EditFileRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	file, err := h.vcsSvc.EditFile(c.Params("name"), req.Name, req.NewName, req.Content)
	if err != nil {
		return fmt.Errorf("failed to edit file: %w", err)
	}
	return c.JSON(file)
}

func (h *Handler) deleteFile(c *fiber.Ctx) error {
	fileName := c.Query("file")
	if fileName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "file query parameter is required")
	}

	if err := h.vcsSvc.DeleteFile(c.Params("name"), fileName); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listBranches(c *fiber.Ctx) error {
	repo, err := h.vcsSvc.Get(c.Params("name"))
	if err != nil {
		return fmt.Errorf("failed to get repository: %w", err)
	}
	return c.JSON(repo.Branches)
}

func (h *Handler) createBranch(c *fiber.Ctx) error {
	var req CreateBranchRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	branch, err := h.vcsSvc.CreateBranch(c.Params("name"), req.Name, req.Base)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

func (h *Handler) switchBranch(c *fiber.Ctx) error {
	var req SwitchBranchRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	if err := h.vcsSvc.SwitchBranch(c.Params("name"), req.Name); err != nil {
		return fmt.Errorf("failed to switch branch: %w", err)
	}
	return h.get(c)
}

func (h *Handler) merge(c *fiber.Ctx) error {
	var req MergeRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	result, err := h.vcsSvc.Merge(c.Params("name"), req.Source, req.Target)
	if err != nil {
		return fmt.Errorf("failed to merge branches: %w", err)
	}
	return c.JSON(result)
}

func (h *Handler) deleteBranch(c *fiber.Ctx) error {
	if err := h.vcsSvc.DeleteBranch(c.Params("name"), c.Params("branch")); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listCommits(c *fiber.Ctx) error {
	commits, err := h.vcsSvc.Commits(c.Params("name"))
	if err != nil {
		return fmt.Errorf("failed to list commits: %w", err)
	}
	return c.JSON(commits)
}

func (h *Handler) postCommit(c *fiber.Ctx) error {
	var req CommitRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	commit, err := h.vcsSvc.RecordCommit(c.Params("name"), req.Message, req.Author, req.Branch, req.Files)
	if err != nil {
		return fmt.Errorf("failed to record commit: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(commit)
}

func (h *Handler) graph(c *fiber.Ctx) error {
	repo, err := h.vcsSvc.Get(c.Params("name"))
	if err != nil {
		return fmt.Errorf("failed to get repository: %w", err)
	}
	return c.JSON(graph.Build(repo))
}

func (h *Handler) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, vcs.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, vcs.ErrDuplicateName):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, vcs.ErrProtectedBranch):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, vcs.ErrSameBranch):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, vcs.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
