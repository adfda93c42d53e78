package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/articles/:slug/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)

	comments, err := s.commentService.ListForArticle(c.Context(), c.Params("slug"), viewerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewCommentsResponse(comments))
}

// CreateComment handles POST /api/articles/:slug/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Comment struct {
			Body string `json:"body"`
		} `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), c.Params("slug"), userID, req.Comment.Body)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CommentResponse{
		Comment: models.NewCommentView(comment),
	})
}

// DeleteComment handles DELETE /api/articles/:slug/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	if err := s.commentService.Delete(c.Context(), c.Params("slug"), commentID, userID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.MessageResponse{Message: "Comment deleted successfully"})
}
