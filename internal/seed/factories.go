// Package seed provides database seeding utilities for development demos.
package seed

import (
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// demoPassword is the shared password for all seeded accounts.
const demoPassword = "password123"

var tagPool = []string{
	"go", "programming", "writing", "travel", "music", "food", "books",
	"productivity", "devops", "databases", "design", "career", "opensource",
}

// Factory creates realistic demo entities.
type Factory struct {
	db           *gorm.DB
	passwordHash string
}

// NewFactory returns a Factory bound to the given database.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())

	// One bcrypt call for the whole run; hashing per user is what makes
	// seeders slow.
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	return &Factory{db: db, passwordHash: string(hash)}
}

// CreateUser inserts a user with generated profile data.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: f.passwordHash,
		Bio:      gofakeit.Sentence(10),
		Image:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArticle inserts an article authored by the given user.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	title := gofakeit.Sentence(gofakeit.Number(3, 7))
	title = strings.TrimSuffix(title, ".")

	article := &models.Article{
		Slug:        slug.NewArticleSlug(title),
		Title:       title,
		Description: gofakeit.Sentence(12),
		Body:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
		TagList:     randomTags(),
		AuthorID:    author.ID,
	}
	for _, override := range overrides {
		override(article)
	}
	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateComment inserts a comment on an article.
func (f *Factory) CreateComment(author *models.User, article *models.Article) (*models.Comment, error) {
	comment := &models.Comment{
		Body:      gofakeit.Sentence(gofakeit.Number(6, 18)),
		ArticleID: article.ID,
		AuthorID:  author.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFavorite records a favorite; repeats are silently absorbed.
func (f *Factory) CreateFavorite(user *models.User, article *models.Article) error {
	return f.db.Exec(
		`INSERT INTO favorites (user_id, article_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		user.ID, article.ID,
	).Error
}

// CreateFollow records a follow; repeats are silently absorbed.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	return f.db.Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		follower.ID, followee.ID,
	).Error
}

func randomTags() models.TagList {
	n := gofakeit.Number(0, 4)
	tags := make(models.TagList, 0, n)
	seen := map[string]bool{}
	for len(tags) < n {
		tag := tagPool[gofakeit.Number(0, len(tagPool)-1)]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
