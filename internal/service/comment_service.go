package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService implements commenting on articles.
type CommentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository) *CommentService {
	return &CommentService{comments: comments, articles: articles}
}

// Add attaches a comment to the article at the given slug.
func (s *CommentService) Add(ctx context.Context, slugParam string, authorID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("comment body cannot be empty")
	}
	article, err := s.articles.GetBySlug(ctx, slugParam, authorID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  authorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForArticle returns the article's comments, oldest first.
func (s *CommentService) ListForArticle(ctx context.Context, slugParam string, viewerID uint) ([]*models.Comment, error) {
	article, err := s.articles.GetBySlug(ctx, slugParam, viewerID)
	if err != nil {
		return nil, err
	}
	return s.comments.GetByArticleID(ctx, article.ID)
}

// Delete removes the caller's own comment from the article at the given
// slug.
func (s *CommentService) Delete(ctx context.Context, slugParam string, commentID, callerID uint) error {
	article, err := s.articles.GetBySlug(ctx, slugParam, callerID)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.ArticleID != article.ID {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.AuthorID != callerID {
		return models.NewForbiddenError("you can only delete your own comments")
	}
	return s.comments.Delete(ctx, commentID)
}
