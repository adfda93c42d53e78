// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ArticleFilter names the optional listing filters. Set fields compose
// conjunctively (AND); a nil FavoritedByUserID means "no favorited-by
// constraint", not "favorited by nobody".
type ArticleFilter struct {
	Tag               string
	AuthorUsername    string
	FavoritedByUserID *uint
	ViewerID          uint
	Limit             int
	Offset            int
}

// ArticleRepository defines persistence operations for articles and the
// favorites ledger attached to them.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string, viewerID uint) (*models.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, article *models.Article) error
	Favorite(ctx context.Context, userID, articleID uint) error
	Unfavorite(ctx context.Context, userID, articleID uint) error
	IsFavorited(ctx context.Context, userID, articleID uint) (bool, error)
	FavoritesCount(ctx context.Context, articleID uint) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string, viewerID uint) (*models.Article, error) {
	var article models.Article

	fetch := func() error {
		err := r.applyArticleDetails(r.db.WithContext(ctx), viewerID).
			Preload("Author").
			Where("articles.slug = ?", slug).
			First(&article).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Article", slug)
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Anonymous reads share one projection, so they are safe to cache.
	if viewerID == 0 {
		if err := cache.Aside(ctx, cache.ArticleKey(slug), &article, cache.ArticleTTL, fetch); err != nil {
			return nil, err
		}
		return &article, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Article{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var articles []*models.Article
	query := r.applyArticleDetails(r.db.WithContext(ctx), filter.ViewerID)
	query = r.applyFilter(query, filter)
	err := query.
		Preload("Author").
		Order("articles.created_at DESC, articles.slug ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return articles, total, nil
}

// applyFilter appends the WHERE/JOIN clauses for the requested filter.
// Filters are conjunctive.
func (r *articleRepository) applyFilter(db *gorm.DB, filter ArticleFilter) *gorm.DB {
	if filter.Tag != "" {
		// TagList is stored as a JSON array; matching the quoted element
		// keeps "go" from matching "golang".
		db = db.Where("articles.tag_list LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.AuthorUsername != "" {
		db = db.Joins("JOIN users ON users.id = articles.author_id").
			Where("users.username = ?", filter.AuthorUsername)
	}
	if filter.FavoritedByUserID != nil {
		db = db.Joins("JOIN favorites ON favorites.article_id = articles.id").
			Where("favorites.user_id = ?", *filter.FavoritedByUserID)
	}
	return db
}

// applyArticleDetails adds subqueries to fetch the favorites count and the
// viewer's favorited flag in a single query. The facts come from ledger
// membership at read time; nothing is cached on the article row.
func (r *articleRepository) applyArticleDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "articles.*, " +
		"(SELECT COUNT(*) FROM favorites WHERE favorites.article_id = articles.id) AS favorites_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM favorites WHERE favorites.article_id = articles.id AND favorites.user_id = ?) AS favorited",
			viewerID)
	}

	return db.Select(selectQuery + ", FALSE AS favorited")
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

// Delete removes the article and its dependent rows in one transaction:
// detach favorites and comments first, then the entity itself.
func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, article.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

func (r *articleRepository) Favorite(ctx context.Context, userID, articleID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic: concurrent identical
	// requests leave exactly one row and none of them error.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO favorites (user_id, article_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		userID, articleID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	return nil
}

func (r *articleRepository) Unfavorite(ctx context.Context, userID, articleID uint) error {
	// Deleting an absent relation is a no-op, not an error.
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) IsFavorited(ctx context.Context, userID, articleID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *articleRepository) FavoritesCount(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("article_id = ?", articleID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
