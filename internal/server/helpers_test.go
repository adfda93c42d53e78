package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a full server over an in-memory database with the
// real routing and auth stack. Redis is absent, so caching and rate
// limiting degrade to no-ops.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Favorite{},
		&models.Follow{},
		&models.Comment{},
	))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "0",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

// registerTestUser creates a user directly and returns a signed token.
func registerTestUser(t *testing.T, srv *Server, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$04$notarealhashbutirrelevant0000000000000000000000000000",
	}
	require.NoError(t, srv.db.Create(user).Error)

	token, err := srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var limit, offset int
	app.Get("/x", func(c *fiber.Ctx) error {
		limit, offset = parsePagination(c)
		return c.SendString("ok")
	})

	tests := []struct {
		name           string
		target         string
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults", "/x", 20, 0},
		{"explicit", "/x?limit=5&offset=10", 5, 10},
		{"capped", "/x?limit=5000", 100, 0},
		{"garbage ignored", "/x?limit=abc&offset=-4", 20, 0},
		{"zero limit falls back", "/x?limit=0", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, tt.expectedLimit, limit)
			require.Equal(t, tt.expectedOffset, offset)
		})
	}
}
