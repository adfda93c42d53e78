package seed

import (
	"fmt"
	"math/rand"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
}

// Seed populates the database with a demo social mesh: users who author
// articles, follow each other, favorite and comment.
func Seed(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	articles := make([]*models.Article, 0, opts.NumArticles)
	for i := 0; i < opts.NumArticles; i++ {
		author := users[rand.Intn(len(users))]
		article, err := factory.CreateArticle(author)
		if err != nil {
			return fmt.Errorf("creating article %d: %w", i, err)
		}
		articles = append(articles, article)
	}

	// Each user follows a handful of others and favorites a few articles.
	for _, user := range users {
		for i := 0; i < rand.Intn(5); i++ {
			other := users[rand.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			if err := factory.CreateFollow(user, other); err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
		}
		for i := 0; i < rand.Intn(6); i++ {
			article := articles[rand.Intn(len(articles))]
			if err := factory.CreateFavorite(user, article); err != nil {
				return fmt.Errorf("creating favorite: %w", err)
			}
		}
	}

	// A comment thread on roughly half the articles.
	for _, article := range articles {
		for i := 0; i < rand.Intn(4); i++ {
			commenter := users[rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, article); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	return nil
}

// clearData removes all seeded rows, dependents first.
func clearData(db *gorm.DB) error {
	for _, table := range []string{"comments", "favorites", "follows", "articles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
