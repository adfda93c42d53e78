package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListArticles handles GET /api/articles
func (s *Server) ListArticles(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)
	limit, offset := parsePagination(c)

	articles, total, err := s.articleService.List(c.Context(), viewerID, service.ListArticlesInput{
		Tag:       c.Query("tag"),
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewArticlesResponse(articles, total))
}

// GetArticle handles GET /api/articles/:slug
func (s *Server) GetArticle(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)

	article, err := s.articleService.Get(c.Context(), c.Params("slug"), viewerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewArticleResponse(article))
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Article struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Body        string   `json:"body"`
			TagList     []string `json:"tagList"`
		} `json:"article"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Create(c.Context(), userID, service.CreateArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewArticleResponse(article))
}

// UpdateArticle handles PUT /api/articles/:slug
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Article struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Body        *string `json:"body"`
		} `json:"article"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Update(c.Context(), c.Params("slug"), userID, service.UpdateArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewArticleResponse(article))
}

// DeleteArticle handles DELETE /api/articles/:slug
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.articleService.Delete(c.Context(), c.Params("slug"), userID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.MessageResponse{Message: "Article deleted successfully"})
}

// FavoriteArticle handles POST /api/articles/:slug/favorite
func (s *Server) FavoriteArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	article, err := s.articleService.Favorite(c.Context(), c.Params("slug"), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewArticleResponse(article))
}

// UnfavoriteArticle handles DELETE /api/articles/:slug/favorite
func (s *Server) UnfavoriteArticle(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	article, err := s.articleService.Unfavorite(c.Context(), c.Params("slug"), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.NewArticleResponse(article))
}
