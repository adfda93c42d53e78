package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("not following initially", func(t *testing.T) {
		following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("follow is idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Follow(ctx, alice.ID, bob.ID))
		}

		var count int64
		db.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).
			Count(&count)
		assert.EqualValues(t, 1, count)

		following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("follow is directional", func(t *testing.T) {
		following, err := repo.IsFollowing(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("unfollow is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
		require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))

		following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("anonymous viewer never follows", func(t *testing.T) {
		following, err := repo.IsFollowing(ctx, 0, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})
}
