package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)

	profile, err := s.profileService.Get(c.Context(), c.Params("username"), viewerID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.ProfileResponse{
		Profile: models.NewProfileView(profile.User, profile.Following),
	})
}

// FollowUser handles POST /api/profiles/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.Follow(c.Context(), c.Params("username"), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.ProfileResponse{
		Profile: models.NewProfileView(profile.User, profile.Following),
	})
}

// UnfollowUser handles DELETE /api/profiles/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.Unfollow(c.Context(), c.Params("username"), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(models.ProfileResponse{
		Profile: models.NewProfileView(profile.User, profile.Following),
	})
}
