// Package search exposes repository-name and file search over HTTP.
package search

import (
	"errors"
	"fmt"
	"net/url"

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

// RepositoriesResponse lists matching repository names.
type RepositoriesResponse struct {
	Results []string `json:"results"`
}

// FilesResponse lists matching file names within one repository.
type FilesResponse struct {
	Repository string   `json:"repository"`
	Results    []string `json:"results"`
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/search")

	r.Use(h.errorsHandler)

	r.Get("/repos/:term", h.repos)
	r.Get("/files/:name/:term", h.files)
}

func (h *Handler) repos(c *fiber.Ctx) error {
	return c.JSON(RepositoriesResponse{
		Results: h.vcsSvc.SearchRepositories(param(c, "term")),
	})
}

func (h *Handler) files(c *fiber.Ctx) error {
	repoName := param(c, "name")
	inContent := c.QueryBool("content", false)

	results, err := h.vcsSvc.SearchFiles(repoName, param(c, "term"), inContent)
	if err != nil {
		return fmt.Errorf("failed to search files: %w", err)
	}
	return c.JSON(FilesResponse{Repository: repoName, Results: results})
}

// param returns a path parameter with percent-encoding undone; search terms
// arrive URI-encoded.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	if errors.Is(err, vcs.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
