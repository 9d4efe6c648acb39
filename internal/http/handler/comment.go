package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docshelf/internal/service"
)

type addCommentRequest struct {
	Content *string `json:"content"`
}

// ListComments godoc
// @Summary List a document's comments
// @Description Oldest first. Unknown documents yield an empty list.
// @Tags comments
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {array} model.Comment
// @Failure 500 {object} errorPayload
// @Router /api/documents/{id}/comments [get]
func ListComments(svc service.CommentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comments, err := svc.List(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, log, err, "failed to list comments")
		}
		return c.JSON(comments)
	}
}

// AddComment godoc
// @Summary Comment on a document
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body addCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/documents/{id}/comments [post]
func AddComment(svc service.CommentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addCommentRequest
		if err := c.BodyParser(&req); err != nil || req.Content == nil {
			return writeError(c, fiber.StatusBadRequest, "CONTENT_REQUIRED", service.ErrContentRequired.Error())
		}

		comment, err := svc.Add(c.UserContext(), c.Params("id"), *req.Content)
		if err != nil {
			return writeServiceError(c, log, err, "failed to add comment")
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}
