package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		user := &models.User{Username: "dana", Email: "dana@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "dana", byID.Username)

		byEmail, err := repo.GetByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byUsername, err := repo.GetByUsername(ctx, "dana")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byUsername.ID)
	})

	t.Run("missing user is NotFound", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.Equal(t, "NOT_FOUND", models.ErrorCode(err))

		_, err = repo.GetByID(ctx, 424242)
		assert.Equal(t, "NOT_FOUND", models.ErrorCode(err))
	})

	t.Run("update", func(t *testing.T) {
		user := &models.User{Username: "eli", Email: "eli@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		user.Bio = "updated bio"
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByUsername(ctx, "eli")
		require.NoError(t, err)
		assert.Equal(t, "updated bio", got.Bio)
	})
}
