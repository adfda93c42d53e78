// Package service contains the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/slug"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CreateArticleInput carries the fields for a new article.
type CreateArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleInput carries a partial article update. Nil fields are left
// untouched.
type UpdateArticleInput struct {
	Title       *string
	Description *string
	Body        *string
}

// ListArticlesInput carries the listing filters as received from the client.
type ListArticlesInput struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// ArticleService implements article publishing, listing and the favorites
// ledger.
type ArticleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
}

// NewArticleService returns a new ArticleService.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository) *ArticleService {
	return &ArticleService{articles: articles, users: users}
}

// Create publishes a new article for the given author. The slug is derived
// from the title with a random suffix, so two articles may share a title.
func (s *ArticleService) Create(ctx context.Context, authorID uint, input CreateArticleInput) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("title cannot be empty")
	}

	article := &models.Article{
		Slug:        slug.NewArticleSlug(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     input.TagList,
		AuthorID:    authorID,
	}
	if article.TagList == nil {
		article.TagList = models.TagList{}
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return s.articles.GetBySlug(ctx, article.Slug, authorID)
}

// Get fetches an article by slug, with favorited computed for the viewer.
// A viewerID of zero means anonymous.
func (s *ArticleService) Get(ctx context.Context, slugParam string, viewerID uint) (*models.Article, error) {
	return s.articles.GetBySlug(ctx, slugParam, viewerID)
}

// List returns a page of articles matching the filters plus the total count
// before pagination. An unknown favorited username matches nothing.
func (s *ArticleService) List(ctx context.Context, viewerID uint, input ListArticlesInput) ([]*models.Article, int64, error) {
	filter := repository.ArticleFilter{
		Tag:            input.Tag,
		AuthorUsername: input.Author,
		ViewerID:       viewerID,
		Limit:          normalizeLimit(input.Limit),
		Offset:         max(input.Offset, 0),
	}

	if input.Favorited != "" {
		user, err := s.users.GetByUsername(ctx, input.Favorited)
		if err != nil {
			if models.ErrorCode(err) == "NOT_FOUND" {
				return []*models.Article{}, 0, nil
			}
			return nil, 0, err
		}
		filter.FavoritedByUserID = &user.ID
	}

	return s.articles.List(ctx, filter)
}

// Update applies a partial edit to the caller's own article. Changing the
// title regenerates the slug, so the article moves to a new address.
func (s *ArticleService) Update(ctx context.Context, slugParam string, callerID uint, input UpdateArticleInput) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slugParam, callerID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != callerID {
		return nil, models.NewForbiddenError("you can only edit your own articles")
	}

	if input.Title != nil && *input.Title != article.Title {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, models.NewValidationError("title cannot be empty")
		}
		article.Title = *input.Title
		article.Slug = slug.NewArticleSlug(*input.Title)
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	cache.InvalidateArticle(ctx, slugParam)
	return s.articles.GetBySlug(ctx, article.Slug, callerID)
}

// Delete removes the caller's own article along with its favorites and
// comments.
func (s *ArticleService) Delete(ctx context.Context, slugParam string, callerID uint) error {
	article, err := s.articles.GetBySlug(ctx, slugParam, callerID)
	if err != nil {
		return err
	}
	if article.AuthorID != callerID {
		return models.NewForbiddenError("you can only delete your own articles")
	}
	return s.articles.Delete(ctx, article)
}

// Favorite marks an article as favorited by the caller. Repeating the call
// changes nothing.
func (s *ArticleService) Favorite(ctx context.Context, slugParam string, callerID uint) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slugParam, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.articles.Favorite(ctx, callerID, article.ID); err != nil {
		return nil, err
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return s.articles.GetBySlug(ctx, article.Slug, callerID)
}

// Unfavorite removes the caller's favorite. Removing an absent favorite is
// a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, slugParam string, callerID uint) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slugParam, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.articles.Unfavorite(ctx, callerID, article.ID); err != nil {
		return nil, err
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return s.articles.GetBySlug(ctx, article.Slug, callerID)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
