package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Favorite{},
		&models.Follow{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArticle(t *testing.T, db *gorm.DB, author *models.User, slug, title string, tags ...string) *models.Article {
	article := &models.Article{
		Slug:     slug,
		Title:    title,
		Body:     "body",
		TagList:  models.TagList(tags),
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

func TestArticleRepositoryGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, "first-post-abc", "First Post", "go")

	t.Run("found with author preloaded", func(t *testing.T) {
		got, err := repo.GetBySlug(ctx, "first-post-abc", 0)
		require.NoError(t, err)
		assert.Equal(t, article.ID, got.ID)
		assert.Equal(t, "author", got.Author.Username)
		assert.False(t, got.Favorited)
		assert.EqualValues(t, 0, got.FavoritesCount)
	})

	t.Run("missing slug is NotFound", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "no-such-slug", 0)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", models.ErrorCode(err))
	})

	t.Run("favorited is viewer relative", func(t *testing.T) {
		require.NoError(t, repo.Favorite(ctx, reader.ID, article.ID))

		asReader, err := repo.GetBySlug(ctx, "first-post-abc", reader.ID)
		require.NoError(t, err)
		assert.True(t, asReader.Favorited)
		assert.EqualValues(t, 1, asReader.FavoritesCount)

		asAuthor, err := repo.GetBySlug(ctx, "first-post-abc", author.ID)
		require.NoError(t, err)
		assert.False(t, asAuthor.Favorited)
		assert.EqualValues(t, 1, asAuthor.FavoritesCount)
	})
}

func TestArticleRepositoryFavoriteIdempotence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, "slug-a", "A")

	// Repeating the favorite never errors and leaves exactly one row.
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Favorite(ctx, reader.ID, article.ID))
	}

	count, err := repo.FavoritesCount(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	ok, err := repo.IsFavorited(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Unfavoriting twice is equally silent.
	require.NoError(t, repo.Unfavorite(ctx, reader.ID, article.ID))
	require.NoError(t, repo.Unfavorite(ctx, reader.ID, article.ID))

	count, err = repo.FavoritesCount(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestArticleRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	a1 := createTestArticle(t, db, alice, "go-tips-001", "Go Tips", "go", "tips")
	createTestArticle(t, db, alice, "cooking-002", "Cooking", "food")
	a3 := createTestArticle(t, db, bob, "go-deep-003", "Go Deep", "go")

	require.NoError(t, repo.Favorite(ctx, bob.ID, a1.ID))

	t.Run("no filters returns everything with total", func(t *testing.T) {
		articles, total, err := repo.List(ctx, ArticleFilter{Limit: 20})
		require.NoError(t, err)
		assert.Len(t, articles, 3)
		assert.EqualValues(t, 3, total)
	})

	t.Run("tag filter", func(t *testing.T) {
		articles, total, err := repo.List(ctx, ArticleFilter{Tag: "go", Limit: 20})
		require.NoError(t, err)
		assert.Len(t, articles, 2)
		assert.EqualValues(t, 2, total)
	})

	t.Run("tag filter does not match substrings", func(t *testing.T) {
		_, total, err := repo.List(ctx, ArticleFilter{Tag: "tip", Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("author filter", func(t *testing.T) {
		articles, total, err := repo.List(ctx, ArticleFilter{AuthorUsername: "bob", Limit: 20})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, a3.Slug, articles[0].Slug)
	})

	t.Run("favorited-by filter", func(t *testing.T) {
		articles, total, err := repo.List(ctx, ArticleFilter{FavoritedByUserID: &bob.ID, Limit: 20})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, a1.Slug, articles[0].Slug)
	})

	t.Run("filters compose conjunctively", func(t *testing.T) {
		_, total, err := repo.List(ctx, ArticleFilter{
			Tag:            "go",
			AuthorUsername: "alice",
			Limit:          20,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("total ignores pagination", func(t *testing.T) {
		articles, total, err := repo.List(ctx, ArticleFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.EqualValues(t, 3, total)
	})

	t.Run("viewer sees own favorited flags in listing", func(t *testing.T) {
		articles, _, err := repo.List(ctx, ArticleFilter{ViewerID: bob.ID, Limit: 20})
		require.NoError(t, err)
		byShortSlug := map[string]bool{}
		for _, a := range articles {
			byShortSlug[a.Slug] = a.Favorited
		}
		assert.True(t, byShortSlug["go-tips-001"])
		assert.False(t, byShortSlug["go-deep-003"])
	})
}

func TestArticleRepositoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, "doomed-xyz", "Doomed")

	require.NoError(t, repo.Favorite(ctx, reader.ID, article.ID))
	require.NoError(t, db.Create(&models.Comment{
		Body: "nice", ArticleID: article.ID, AuthorID: reader.ID,
	}).Error)

	require.NoError(t, repo.Delete(ctx, article))

	_, err := repo.GetBySlug(ctx, "doomed-xyz", 0)
	assert.Equal(t, "NOT_FOUND", models.ErrorCode(err))

	var favorites, comments int64
	db.Model(&models.Favorite{}).Where("article_id = ?", article.ID).Count(&favorites)
	db.Model(&models.Comment{}).Where("article_id = ?", article.ID).Count(&comments)
	assert.EqualValues(t, 0, favorites)
	assert.EqualValues(t, 0, comments)
}

func TestArticleRepositoryUpdateSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	article := createTestArticle(t, db, author, "old-slug-123", "Old")

	article.Slug = "new-slug-456"
	article.Title = "New"
	require.NoError(t, repo.Update(ctx, article))

	_, err := repo.GetBySlug(ctx, "old-slug-123", 0)
	assert.Equal(t, "NOT_FOUND", models.ErrorCode(err))

	got, err := repo.GetBySlug(ctx, "new-slug-456", 0)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
}
