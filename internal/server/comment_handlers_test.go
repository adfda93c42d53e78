package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	srv, app := setupTestServer(t)
	_, authorToken := registerTestUser(t, srv, "author")
	_, commenterToken := registerTestUser(t, srv, "commenter")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/articles/", authorToken,
		createArticleRequest("Commented Post")))
	require.NoError(t, err)
	var created models.ArticleResponse
	decodeBody(t, resp, &created)
	slug := created.Article.Slug

	commentsURL := "/api/articles/" + slug + "/comments"

	// Post two comments
	var commentIDs []uint
	for _, body := range []string{"first", "second"} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, commentsURL, commenterToken,
			map[string]any{"comment": map[string]any{"body": body}}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.CommentResponse
		decodeBody(t, resp, &comment)
		assert.Equal(t, "commenter", comment.Comment.Author.Username)
		commentIDs = append(commentIDs, comment.Comment.ID)
	}

	t.Run("listed oldest first, public", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, commentsURL, "", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listing models.CommentsResponse
		decodeBody(t, resp, &listing)
		require.Len(t, listing.Comments, 2)
		assert.Equal(t, "first", listing.Comments[0].Body)
		assert.Equal(t, "second", listing.Comments[1].Body)
	})

	t.Run("empty body unprocessable", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, commentsURL, commenterToken,
			map[string]any{"comment": map[string]any{"body": "  "}}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("comments on missing article 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/articles/ghost/comments", "", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-author delete forbidden", func(t *testing.T) {
		target := fmt.Sprintf("%s/%d", commentsURL, commentIDs[0])
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, target, authorToken, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("author deletes own comment", func(t *testing.T) {
		target := fmt.Sprintf("%s/%d", commentsURL, commentIDs[0])
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, target, commenterToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		listResp, err := app.Test(jsonRequest(t, http.MethodGet, commentsURL, "", nil))
		require.NoError(t, err)
		var listing models.CommentsResponse
		decodeBody(t, listResp, &listing)
		assert.Len(t, listing.Comments, 1)
	})

	t.Run("article delete removes comments", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/articles/"+slug, authorToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		srv.db.Model(&models.Comment{}).Count(&count)
		assert.EqualValues(t, 0, count)
	})
}
